package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// console prints the human-facing lines. Colour is applied only when
// fatih/color detects a terminal.
type console struct {
	out, err io.Writer

	ok   *color.Color
	bad  *color.Color
	info *color.Color
}

func newConsole(out, errOut io.Writer) *console {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &console{
		out:  out,
		err:  errOut,
		ok:   color.New(color.FgGreen),
		bad:  color.New(color.FgRed),
		info: color.New(color.FgCyan),
	}
}

func (c *console) fixed(path string) {
	c.ok.Fprint(c.out, "Fixed:")
	fmt.Fprintf(c.out, " %s\n", path)
}

func (c *console) fileError(path string, err error) {
	c.bad.Fprint(c.err, "Error processing")
	fmt.Fprintf(c.err, " %s: %v\n", path, err)
}

func (c *console) summary(total, fixed int) {
	fmt.Fprintln(c.out)
	c.info.Fprintf(c.out, "Processed %d files, fixed %d files", total, fixed)
	fmt.Fprintln(c.out)
}
