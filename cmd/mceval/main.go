// mceval runs the metacircular evaluator on files, expressions or a REPL.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/nukata/mceval"
	"github.com/tevino/abool/v2"
)

// lineReader adapts readline to mceval.LineReader.
type lineReader struct {
	*readline.Instance
}

func (r lineReader) Readline() (string, error) {
	line, err := r.Instance.Readline()
	if err == readline.ErrInterrupt {
		return line, mceval.ErrPromptInterrupted
	}
	return line, err
}

// run executes the program as configured and returns the exit code.
func run(options *Options, stdout, stderr io.Writer) int {
	if options.Help {
		fmt.Fprint(stdout, usage)
		return 0
	}
	if options.NoColor {
		color.NoColor = true
	}
	logger := mceval.NewLogger(stderr)
	logger.Level = options.LogLevel
	interp := &mceval.Interp{
		Lazy:      options.Lazy,
		Interrupt: abool.New(),
		Log:       logger,
	}
	env := mceval.NewGlobalEnvironment(stdout)

	for _, fileName := range options.Files {
		logger.Infof("loading %s", fileName)
		if err := load(interp, env, fileName); err != nil {
			logger.Errorf("%s: %v", fileName, err)
			return 1
		}
	}
	for _, src := range options.Exprs {
		result, err := interp.Load(strings.NewReader(src), env)
		if err != nil {
			logger.Errorf("%v", err)
			return 1
		}
		if result != mceval.Void {
			fmt.Fprintln(stdout, mceval.Stringify(result, true))
		}
	}
	if !options.Interactive {
		return 0
	}

	rl, err := readline.New("> ")
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	defer rl.Close()
	stop := interruptOnSignal(interp.Interrupt)
	defer stop()
	repl := mceval.NewREPL(interp, env, lineReader{rl}, stdout)
	if err := repl.Run(); err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	return 0
}

func load(interp *mceval.Interp, env *mceval.Environment, fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = interp.Load(file, env)
	return err
}

// interruptOnSignal sets flag on each SIGINT until stop is called.
func interruptOnSignal(flag *abool.AtomicBool) (stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-c:
				flag.Set()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(c)
		close(done)
	}
}

func main() {
	options, err := ParseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	os.Exit(run(options, os.Stdout, os.Stderr))
}
