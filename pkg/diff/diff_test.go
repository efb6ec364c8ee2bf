package diff_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/prettydoc/pkg/diff"
)

func TestCompute(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for equal content", func(t *testing.T) {
		t.Parallel()

		if p := diff.Compute("a.md", nil, []byte{}); p != nil {
			t.Error("expected nil for empty inputs")
		}
		content := []byte("hello\nworld\n")
		if p := diff.Compute("a.md", content, content); p != nil {
			t.Error("expected nil for identical content")
		}
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		p := diff.Compute("a.md", []byte("hello\nworld\n"), []byte("hello\nearth\n"))
		if !p.HasChanges() {
			t.Fatal("expected changes")
		}

		want := "--- a/a.md\n+++ b/a.md\n@@ -1,2 +1,2 @@\n hello\n-world\n+earth\n"
		if got := p.String(); got != want {
			t.Errorf("String() =\n%s\nwant\n%s", got, want)
		}
		if p.Additions != 1 || p.Deletions != 1 {
			t.Errorf("counts = +%d -%d, want +1 -1", p.Additions, p.Deletions)
		}
	})

	t.Run("insertion into empty file", func(t *testing.T) {
		t.Parallel()

		p := diff.Compute("new.md", nil, []byte("a\nb\n"))
		if p == nil || len(p.Hunks) != 1 {
			t.Fatalf("expected one hunk, got %+v", p)
		}
		if got := p.Hunks[0].Header(); got != "@@ -0,0 +1,2 @@" {
			t.Errorf("Header() = %q", got)
		}
		if p.Additions != 2 || p.Deletions != 0 {
			t.Errorf("counts = +%d -%d, want +2 -0", p.Additions, p.Deletions)
		}
	})

	t.Run("missing final newline is reported", func(t *testing.T) {
		t.Parallel()

		p := diff.Compute("a.md", []byte("x\ny"), []byte("x\ny\n"))
		if p == nil {
			t.Fatal("expected a diff")
		}

		want := "--- a/a.md\n+++ b/a.md\n@@ -1,2 +1,2 @@\n x\n-y\n\\ No newline at end of file\n+y\n"
		if got := p.String(); got != want {
			t.Errorf("String() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("distant changes form separate hunks", func(t *testing.T) {
		t.Parallel()

		var before, after []string
		for i := range 20 {
			line := strings.Repeat("x", i+1)
			before = append(before, line)
			after = append(after, line)
		}
		after[1] = "changed-early"
		after[18] = "changed-late"

		p := diff.Compute("a.md", []byte(strings.Join(before, "\n")+"\n"), []byte(strings.Join(after, "\n")+"\n"))
		if p == nil {
			t.Fatal("expected a diff")
		}
		if len(p.Hunks) != 2 {
			t.Fatalf("expected 2 hunks, got %d", len(p.Hunks))
		}
		if got := p.Hunks[0].Header(); got != "@@ -1,5 +1,5 @@" {
			t.Errorf("first hunk header = %q", got)
		}
		if got := p.Hunks[1].Header(); got != "@@ -16,5 +16,5 @@" {
			t.Errorf("second hunk header = %q", got)
		}
	})

	t.Run("nearby changes merge", func(t *testing.T) {
		t.Parallel()

		before := "1\n2\n3\n4\n5\n6\n7\n8\n9\n"
		after := "1\nX\n3\n4\n5\n6\n7\nY\n9\n"

		p := diff.Compute("a.md", []byte(before), []byte(after))
		if p == nil || len(p.Hunks) != 1 {
			t.Fatalf("expected a single merged hunk, got %+v", p)
		}
		if got := p.Hunks[0].Header(); got != "@@ -1,9 +1,9 @@" {
			t.Errorf("Header() = %q", got)
		}
	})
}

func TestPatch_Headers(t *testing.T) {
	t.Parallel()

	p := diff.Compute("/docs/a.md", []byte("a\n"), []byte("b\n"))

	if got := p.GitHeader(); got != "diff --git a/docs/a.md b/docs/a.md" {
		t.Errorf("GitHeader() = %q", got)
	}
	if !strings.HasPrefix(p.FullString(), "diff --git a/docs/a.md b/docs/a.md\n--- a/docs/a.md\n") {
		t.Errorf("FullString() = %q", p.FullString())
	}

	var nilPatch *diff.Patch
	if nilPatch.HasChanges() || nilPatch.String() != "" || nilPatch.FullString() != "" || nilPatch.GitHeader() != "" {
		t.Error("nil patch must render empty")
	}
}

func TestOp_Prefix(t *testing.T) {
	t.Parallel()

	for op, want := range map[diff.Op]string{diff.Equal: " ", diff.Insert: "+", diff.Delete: "-"} {
		if got := op.Prefix(); got != want {
			t.Errorf("%d.Prefix() = %q, want %q", op, got, want)
		}
	}
}
