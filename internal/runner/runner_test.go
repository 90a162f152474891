package runner_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/schemafix/internal/runner"
	"github.com/petasbytes/schemafix/report"
)

const needsPatch = `export const definition = {
  name: 'letta_job_monitor',
  inputSchema: { type: 'object',
    properties: {
      job_id: { type: 'string' },
    },
  },
};
`

const patched = `export const definition = {
  name: 'letta_job_monitor',
  inputSchema: { type: 'object',
    properties: {
      job_id: { type: 'string' },
    },
      additionalProperties: false,
  },
};
`

const compliant = `export const definition = {
  inputSchema: { type: "object",
    properties: { q: { type: 'string' } },
    additionalProperties: false,
  },
};
`

const noMarker = "export const helper = () => ({ ok: true });\n"

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("prepare: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("prepare: %v", err)
		}
	}
}

func readFile(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read %s: %v", p, err)
	}
	return string(b)
}

func newRunner(root string) (*runner.Runner, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return runner.New(root, &out, &errOut), &out, &errOut
}

func statusByPath(s *report.Summary) map[string]report.Status {
	m := make(map[string]report.Status, len(s.Files))
	for _, f := range s.Files {
		m[f.Path] = f.Status
	}
	return m
}

func TestRun_FixesTree(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.js":          needsPatch,
		"b.js":          compliant,
		"c.js":          noMarker,
		"nested/d.js":   needsPatch,
		"nested/e.ts":   needsPatch,
		"nested/f.json": needsPatch,
	})

	r, out, errOut := newRunner(root)
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 4 || sum.Fixed != 2 || sum.Failed != 0 {
		t.Fatalf("summary mismatch: total=%d fixed=%d failed=%d", sum.Total, sum.Fixed, sum.Failed)
	}
	if sum.Blocks.Patched != 2 || sum.Blocks.Compliant != 1 {
		t.Fatalf("blocks mismatch: %+v", sum.Blocks)
	}

	for _, rel := range []string{"a.js", "nested/d.js"} {
		if got := readFile(t, filepath.Join(root, rel)); got != patched {
			t.Fatalf("%s not patched as expected:\n%s", rel, got)
		}
	}
	if got := readFile(t, filepath.Join(root, "b.js")); got != compliant {
		t.Fatalf("compliant file changed:\n%s", got)
	}
	if got := readFile(t, filepath.Join(root, "nested/e.ts")); got != needsPatch {
		t.Fatal("files outside the extension filter must not be touched")
	}

	status := statusByPath(sum)
	if status[filepath.Join(root, "c.js")] != report.StatusSkipped {
		t.Fatalf("c.js status = %q, want skipped", status[filepath.Join(root, "c.js")])
	}
	if status[filepath.Join(root, "b.js")] != report.StatusUnchanged {
		t.Fatalf("b.js status = %q, want unchanged", status[filepath.Join(root, "b.js")])
	}

	o := out.String()
	for _, rel := range []string{"a.js", filepath.Join("nested", "d.js")} {
		if !strings.Contains(o, "Fixed: "+filepath.Join(root, rel)+"\n") {
			t.Fatalf("missing Fixed line for %s in:\n%s", rel, o)
		}
	}
	if !strings.HasSuffix(o, "\nProcessed 4 files, fixed 2 files\n") {
		t.Fatalf("unexpected summary output:\n%q", o)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr output: %s", errOut.String())
	}
}

func TestRun_NoMarkerFileNotOpenedForWriting(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"plain.js": noMarker})
	p := filepath.Join(root, "plain.js")
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(p, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	r, _, _ := newRunner(root)
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	fi, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !fi.ModTime().Equal(old) {
		t.Fatalf("file was rewritten: mtime %v, want %v", fi.ModTime(), old)
	}
}

func TestRun_SecondPassChangesNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": needsPatch, "sub/b.js": needsPatch})

	r, _, _ := newRunner(root)
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	r2, out, _ := newRunner(root)
	sum, err := r2.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if sum.Fixed != 0 {
		t.Fatalf("second pass fixed %d files", sum.Fixed)
	}
	if strings.Contains(out.String(), "Fixed:") {
		t.Fatalf("second pass printed Fixed lines:\n%s", out.String())
	}
}

func TestRun_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "src", "tools")
	r, out, _ := newRunner(root)
	sum, err := r.Run(context.Background())
	if !errors.Is(err, runner.ErrRootNotFound) {
		t.Fatalf("want ErrRootNotFound, got %v", err)
	}
	if sum != nil {
		t.Fatalf("expected nil summary, got %+v", sum)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed, got %q", out.String())
	}
}

func TestRun_RootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tools")
	if err := os.WriteFile(root, []byte(needsPatch), 0o644); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	r, out, errOut := newRunner(root)
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 0 || sum.Fixed != 0 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	if out.String() != "\nProcessed 0 files, fixed 0 files\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected stderr: %q", errOut.String())
	}
	if got := readFile(t, root); got != needsPatch {
		t.Fatal("file root must not be patched")
	}
}

func TestRun_PerFileErrorDoesNotAbort(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.js":   needsPatch,
		"bad.js": "const s = { type: 'object' }\xff\n",
	})

	r, out, errOut := newRunner(root)
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 2 || sum.Fixed != 1 || sum.Failed != 1 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	if !strings.Contains(errOut.String(), "Error processing "+filepath.Join(root, "bad.js")+": ") {
		t.Fatalf("missing error line, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), "Processed 2 files, fixed 1 files") {
		t.Fatalf("unexpected summary: %q", out.String())
	}
}

type rejectAll struct{ calls int }

func (v *rejectAll) VerifyPatch(path, before, after string) error {
	v.calls++
	return errors.New("rejected")
}

func TestRun_VerifierBlocksWrite(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": needsPatch, "b.js": compliant})

	v := &rejectAll{}
	r, _, errOut := newRunner(root)
	r.Verifier = v
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if v.calls != 1 {
		t.Fatalf("verifier called %d times, want 1 (only changed files)", v.calls)
	}
	if sum.Fixed != 0 || sum.Failed != 1 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	if got := readFile(t, filepath.Join(root, "a.js")); got != needsPatch {
		t.Fatal("rejected patch was written")
	}
	if !strings.Contains(errOut.String(), "rejected") {
		t.Fatalf("missing error detail: %q", errOut.String())
	}
}

func TestRun_CustomExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": needsPatch, "b.mjs": needsPatch})

	r, _, _ := newRunner(root)
	r.Ext = ".mjs"
	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum.Total != 1 || sum.Fixed != 1 {
		t.Fatalf("summary mismatch: %+v", sum)
	}
	if got := readFile(t, filepath.Join(root, "a.js")); got != needsPatch {
		t.Fatal(".js file touched with --ext .mjs")
	}
}

func TestRun_CancelledBeforeFirstFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.js": needsPatch})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _, _ := newRunner(root)
	sum, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if sum == nil || sum.Total != 0 {
		t.Fatalf("expected empty partial summary, got %+v", sum)
	}
	if got := readFile(t, filepath.Join(root, "a.js")); got != needsPatch {
		t.Fatal("file touched after cancellation")
	}
}
