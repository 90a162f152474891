package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/petasbytes/schemafix/internal/runner"
	"github.com/petasbytes/schemafix/internal/schemapatch"
	"github.com/petasbytes/schemafix/internal/syntax"
	"github.com/petasbytes/schemafix/report"
)

type options struct {
	root       string
	ext        string
	window     int
	verify     bool
	reportPath string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "schemafix",
		Short: "Add additionalProperties: false to object schemas in generated tool sources",
		Long: `schemafix walks a directory of generated JavaScript tool definitions and,
for every object schema that declares properties but no additionalProperties,
inserts "additionalProperties: false," right before the schema's closing line.

Everything outside the inserted lines is left byte for byte as it was.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&opts.root, "root", runner.DefaultRoot, "Directory to scan recursively")
	f.StringVar(&opts.ext, "ext", runner.DefaultExt, "File extension to patch")
	f.IntVar(&opts.window, "window", schemapatch.DefaultWindow, "Lookahead window in lines, marker line included")
	f.BoolVar(&opts.verify, "verify", false, "Refuse to write patches that introduce syntax errors (needs cgo)")
	f.StringVar(&opts.reportPath, "report", "", "Write a JSON report of per-file outcomes to this path")
	return cmd
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	r := runner.New(opts.root, stdout, stderr)
	r.Ext = opts.ext
	r.Patcher = schemapatch.Patcher{Window: opts.window}
	if opts.verify {
		checker := syntax.NewChecker()
		if checker.Available() {
			r.Verifier = checker
		} else {
			fmt.Fprintln(stderr, "warning: --verify ignored; built without cgo")
		}
	}

	sum, err := r.Run(ctx)
	if err != nil {
		return err
	}
	if opts.reportPath != "" {
		if err := report.Save(opts.reportPath, sum); err != nil {
			// Report failures do not change the exit status.
			fmt.Fprintf(stderr, "warning: failed to save report: %v\n", err)
		}
	}
	return nil
}

func main() {
	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(execute(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its outcome to an exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, runner.ErrRootNotFound):
		root, _ := cmd.Flags().GetString("root")
		fmt.Fprintf(stderr, "Error: %s directory not found\n", root)
		return 1
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "\nExiting...")
		return 130
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}
