// Command mex expands backslash macros in text. Sources named on the
// command line are comment-stripped, concatenated in argument order and
// expanded as one run; with no arguments it reads standard input.
//
// Usage: mex [flags] [file ...]
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mexproc/mex"
	"github.com/mexproc/mex/internal/stripper"
)

type options struct {
	keepIndent bool
	stream     bool
	maxDepth   int
	zeroExit   bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.keepIndent, "keep-indent", false,
		"preserve leading blanks on the line after a stripped comment")
	flag.BoolVar(&opts.stream, "stream", false,
		"write output as it is produced instead of only after a clean run")
	flag.IntVar(&opts.maxDepth, "max-depth", mex.DefaultMaxDepth,
		"maximum construct nesting depth")
	flag.BoolVar(&opts.zeroExit, "zero-exit", false,
		"exit with status 0 even when expansion fails")
	flag.Parse()

	if err := run(flag.Args(), os.Stdin, os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "mex: %v\n", err)
		if opts.zeroExit {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func run(paths []string, stdin io.Reader, stdout io.Writer, opts options) error {
	ld := stripper.New()
	ld.KeepIndent = opts.keepIndent

	input, err := ld.ReadAll(paths, stdin)
	if err != nil {
		return err
	}

	table := mex.NewTable()
	defer table.Reset()

	x := mex.NewExpander(table, ld)
	x.MaxDepth = opts.maxDepth

	if opts.stream {
		w := bufio.NewWriter(stdout)
		if err := x.Expand(sourceName(paths), input, w); err != nil {
			w.Flush()
			return err
		}
		return w.Flush()
	}

	// Default mode holds the whole result back so a failed run produces
	// no partial output.
	var buf bytes.Buffer
	if err := x.Expand(sourceName(paths), input, &buf); err != nil {
		return err
	}
	_, err = stdout.Write(buf.Bytes())
	return err
}

func sourceName(paths []string) string {
	switch len(paths) {
	case 0:
		return "<stdin>"
	case 1:
		return paths[0]
	}
	return strings.Join(paths, "+")
}
