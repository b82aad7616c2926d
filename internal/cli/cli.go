// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tilderain/hongkong97graphicstools/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	if opts.Output == "" {
		opts.Output = generateOutputFilename(opts.Input)
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: hk97gfx [options] <ROM file>\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// generateOutputFilename names the injected ROM after the input file.
func generateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	if ext == "" {
		ext = ".smc"
	}
	return inputFile[:len(inputFile)-len(ext)] + "_modified" + ext
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.OutputDir, "d", "assets", "directory to write extracted assets to")
	flags.StringVar(&opts.Output, "o", "", "name of the ROM file written by injection (default: <input>_modified.smc)")
	flags.StringVar(&opts.InjectConfig, "inject", "", "JSON batch file describing images to compress and inject")
	flags.BoolVar(&opts.Verify, "verify", false, "verify that every known asset survives a recompression round trip")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
