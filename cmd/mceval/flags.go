package main

import (
	"fmt"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/nukata/mceval"
)

// Options is the configuration given on the command line.
type Options struct {
	Lazy        bool
	LogLevel    mceval.Level
	Exprs       []string // -e expressions, in order
	Interactive bool     // enter the REPL after loading files
	NoColor     bool
	Help        bool
	Files       []string
}

const usage = `usage: mceval [options] [file...]

options:
  -l          evaluate lazily (compound procedures get thunks)
  -d LEVEL    log level: debug, info, warn or error (default warn)
  -e EXPR     evaluate EXPR and print the result (repeatable)
  -i          enter the REPL after loading files
  -n          disable colored output
  -h          print this message
`

// ParseFlags parses argv, argv[0] being the program name.
func ParseFlags(argv []string) (*Options, error) {
	options := &Options{LogLevel: mceval.LevelWarn}
	opts, optind, err := getopt.Getopts(argv, "ld:e:inh")
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		switch opt.Option {
		case 'l':
			options.Lazy = true
		case 'd':
			level, err := mceval.ParseLevel(opt.Value)
			if err != nil {
				return nil, err
			}
			options.LogLevel = level
		case 'e':
			options.Exprs = append(options.Exprs, opt.Value)
		case 'i':
			options.Interactive = true
		case 'n':
			options.NoColor = true
		case 'h':
			options.Help = true
		default:
			return nil, fmt.Errorf("unknown option -%c", opt.Option)
		}
	}
	options.Files = argv[optind:]
	if len(options.Files) == 0 && len(options.Exprs) == 0 {
		options.Interactive = true
	}
	return options, nil
}
