package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/petasbytes/schemafix/report"
)

const tool = `export const definition = {
  inputSchema: { type: 'object',
    properties: {
      id: { type: 'string' },
    },
  },
};
`

func TestExecute_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "src", "tools")
	var out, errOut bytes.Buffer
	code := execute(context.Background(), []string{"--root", missing}, &out, &errOut)
	if code == 0 {
		t.Fatal("expected non-zero exit for missing root")
	}
	want := "Error: " + missing + " directory not found\n"
	if errOut.String() != want {
		t.Fatalf("stderr = %q, want %q", errOut.String(), want)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected stdout: %q", out.String())
	}
}

func TestExecute_RootIsAFileExitsZero(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tools")
	if err := os.WriteFile(root, []byte(tool), 0o644); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	if code := execute(context.Background(), []string{"--root", root}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	if out.String() != "\nProcessed 0 files, fixed 0 files\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestExecute_DefaultRootIsRelative(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join("src", "tools"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("src", "tools", "a.js"), []byte(tool), 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	if code := execute(context.Background(), nil, &out, &errOut); code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	want := "Fixed: " + filepath.Join("src", "tools", "a.js") + "\n\nProcessed 1 files, fixed 1 files\n"
	if out.String() != want {
		t.Fatalf("stdout = %q, want %q", out.String(), want)
	}
}

func TestExecute_PerFileErrorsKeepZeroExit(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bad.js"), []byte("type: 'object'\xff"), 0o644); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	if code := execute(context.Background(), []string{"--root", root}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d, want 0", code)
	}
	if !strings.HasPrefix(errOut.String(), "Error processing ") {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestExecute_WritesReport(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.js"), []byte(tool), 0o644); err != nil {
		t.Fatal(err)
	}
	reportPath := filepath.Join(t.TempDir(), "report.json")

	var out, errOut bytes.Buffer
	code := execute(context.Background(), []string{"--root", root, "--report", reportPath}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, errOut.String())
	}
	sum, err := report.Load(reportPath)
	if err != nil || sum == nil {
		t.Fatalf("load report: %v", err)
	}
	if sum.Total != 1 || sum.Fixed != 1 || len(sum.Files) != 1 {
		t.Fatalf("report mismatch: %+v", sum)
	}
	if sum.Files[0].Status != report.StatusFixed || len(sum.Files[0].Insertions) != 1 {
		t.Fatalf("file entry mismatch: %+v", sum.Files[0])
	}
}

func TestExecute_RejectsPositionalArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := execute(context.Background(), []string{"extra"}, &out, &errOut); code == 0 {
		t.Fatal("expected non-zero exit for unexpected argument")
	}
}
