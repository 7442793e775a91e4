package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
)

type options struct {
	inputPath  string
	outputPath string
	version    string
	verbose    bool
	show       bool
}

// env is everything a run needs from the outside world.
type env struct {
	fs          afero.Fs
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
}

func main() {
	interactive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	os.Exit(run(os.Args[0], os.Args[1:], &env{
		fs:          afero.NewOsFs(),
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: interactive,
	}))
}

func run(prog string, args []string, e *env) int {
	var opts options

	flags := flag.NewFlagSet(prog, flag.ContinueOnError)
	flags.SetOutput(e.stderr)
	flags.StringVarP(&opts.inputPath, "input", "i", "", "Path to the uImage to patch.")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Path to write the patched image to.")
	flags.StringVarP(&opts.version, "version", "v", "", "Firmware version, e.g. 3.0.0.4.382.52482.")
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "Print progress and header details.")
	flags.BoolVarP(&opts.show, "show", "s", false, "Print the header and trailer of the input and exit.")
	flags.Usage = func() { usage(e.stderr, prog, flags) }

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if opts.show {
		if !flags.Changed("input") {
			usage(e.stderr, prog, flags)
			return 1
		}
		return showImage(e, opts.inputPath)
	}

	// An empty value still counts as given; it fails later with a diagnostic.
	if !flags.Changed("input") || !flags.Changed("output") || !flags.Changed("version") {
		usage(e.stderr, prog, flags)
		return 1
	}

	if opts.verbose && e.interactive {
		fmt.Fprint(e.stderr, "qcatail\nASUS QCA/QCN uImage checksum fixer\n\n")
	}

	return patchImage(e, &opts)
}
