package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petasbytes/schemafix/toolgen"
)

type options struct {
	table       string
	template    string
	out         string
	manifest    string
	tableSchema bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "toolgen",
		Short: "Render flattened MCP tool handlers from a tool table",
		Long: `toolgen renders one #[tool] handler per entry of a tool table. Each handler
takes the request fields as individual arguments, parses the operation string
and rebuilds the request struct before calling the tool module.

Without --table the built-in table is used. With --manifest it also writes an
Anthropic tool manifest whose input schemas reject unknown keys.`,
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
	f.StringVar(&opts.table, "table", "", "Tool table (YAML or JSON); built-in table when empty")
	f.StringVar(&opts.template, "template", "", "Custom text/template file; built-in template when empty")
	f.StringVarP(&opts.out, "out", "o", "", "Write rendered code here instead of stdout")
	f.StringVar(&opts.manifest, "manifest", "", "Also write a strict JSON tool manifest to this path")
	f.BoolVar(&opts.tableSchema, "table-schema", false, "Print the JSON Schema of the table format and exit")
	return cmd
}

func run(_ context.Context, opts options, stdout, stderr io.Writer) error {
	if opts.tableSchema {
		b, err := json.MarshalIndent(toolgen.TableSchema(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", b)
		return err
	}

	table, err := loadTable(opts.table)
	if err != nil {
		return err
	}
	tmpl, err := loadTemplate(opts.template)
	if err != nil {
		return err
	}

	// Render fully before touching --out so a template error leaves it intact.
	var buf bytes.Buffer
	if err := toolgen.Render(&buf, table, tmpl); err != nil {
		return err
	}
	if opts.out == "" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
			return err
		}
		notice(stderr, "Wrote %d tools to %s\n", len(table.Tools), opts.out)
	}

	if opts.manifest != "" {
		b, err := toolgen.MarshalManifest(table)
		if err != nil {
			return err
		}
		if err := toolgen.VerifyStrict(b); err != nil {
			return err
		}
		if err := os.WriteFile(opts.manifest, b, 0o644); err != nil {
			return err
		}
		notice(stderr, "Wrote manifest to %s\n", opts.manifest)
	}
	return nil
}

func loadTable(path string) (*toolgen.Table, error) {
	if path == "" {
		return toolgen.DefaultTable()
	}
	return toolgen.LoadTable(path)
}

func loadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return toolgen.DefaultTemplate(), nil
	}
	return toolgen.ParseTemplateFile(path)
}

func notice(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, format, args...)
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command and maps its outcome to an exit status.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
