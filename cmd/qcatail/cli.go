package main

import (
	"errors"
	"fmt"
	"io"
	"syscall"

	"qcatail"

	flag "github.com/spf13/pflag"
)

func usage(w io.Writer, prog string, flags *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s -i <input_uimage_file> -o <output_file> -v <asuswrt version (ex. 3.0.0.4.382.52482)>\n", prog)
	fmt.Fprintf(w, "       %s -s -i <input_uimage_file>\n\n", prog)
	flags.PrintDefaults()
}

// errnoSuffix returns the OS error code carried by err, if any.
func errnoSuffix(err error) string {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return fmt.Sprintf(" (errno = %d)", int(errno))
	}

	return ""
}

// reportError prints a wrapped library error in two lines: what was being
// done, then the cause.
func reportError(w io.Writer, err error) {
	msgs := qcatail.GetErrors(err)
	if len(msgs) == 1 {
		fmt.Fprintf(w, " ! Error: %s%s\n", msgs[0], errnoSuffix(err))
		return
	}

	fmt.Fprintf(w, " ! Error %s!\n", msgs[0])
	fmt.Fprintf(w, " ! %s%s\n", msgs[1], errnoSuffix(err))
}
