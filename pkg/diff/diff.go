// Package diff computes line-based unified diffs between two versions of a
// file.
package diff

import (
	"bytes"
	"fmt"
	"strings"
)

// Context is the number of unchanged lines shown around each change.
const Context = 3

// noNewline marks a final line that lacks a line terminator.
const noNewline = `\ No newline at end of file`

// Op is the kind of a diff line.
type Op int

const (
	// Equal is an unchanged context line.
	Equal Op = iota

	// Insert is a line present only in the new version.
	Insert

	// Delete is a line present only in the old version.
	Delete
)

// Prefix returns the unified diff prefix of the op.
func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Op   Op
	Text string

	// NoEOL is set on the last line of a version without a trailing newline.
	NoEOL bool
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Patch is the unified diff of one file.
type Patch struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute returns the diff from before to after for the file at path, or
// nil when they are equal.
func Compute(path string, before, after []byte) *Patch {
	if bytes.Equal(before, after) {
		return nil
	}

	a, b := split(before), split(after)
	ops := script(a, b)

	patch := &Patch{Path: path, Hunks: group(ops)}
	for _, e := range ops {
		switch e.op {
		case Insert:
			patch.Additions++
		case Delete:
			patch.Deletions++
		}
	}
	if len(patch.Hunks) == 0 {
		return nil
	}
	return patch
}

// HasChanges reports whether the patch contains any hunk.
func (p *Patch) HasChanges() bool {
	return p != nil && len(p.Hunks) > 0
}

// GitHeader returns the "diff --git" line.
func (p *Patch) GitHeader() string {
	if p == nil {
		return ""
	}
	path := strings.TrimPrefix(p.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the patch in unified format without the git header.
func (p *Patch) String() string {
	if !p.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(p.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	for _, h := range p.Hunks {
		sb.WriteString(h.Header())
		sb.WriteByte('\n')
		for _, l := range h.Lines {
			sb.WriteString(l.Op.Prefix())
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
			if l.NoEOL {
				sb.WriteString(noNewline)
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

// FullString renders the patch including the git header.
func (p *Patch) FullString() string {
	if !p.HasChanges() {
		return ""
	}
	return p.GitHeader() + "\n" + p.String()
}

// line is a source line and whether it ended with a newline.
type line struct {
	text string
	eol  bool
}

func split(content []byte) []line {
	if len(content) == 0 {
		return nil
	}
	parts := strings.SplitAfter(string(content), "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([]line, len(parts))
	for i, p := range parts {
		text, eol := strings.CutSuffix(p, "\n")
		lines[i] = line{text: text, eol: eol}
	}
	return lines
}

// edit is one step of the edit script. Indices are 0-based positions in
// the old and new line slices.
type edit struct {
	op       Op
	line     line
	oldIndex int
	newIndex int
}

// script returns the shortest edit script from a to b, built from a
// longest-common-subsequence table. Deletions precede insertions within a
// change.
func script(a, b []line) []edit {
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, edit{op: Equal, line: a[i], oldIndex: i, newIndex: j})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, edit{op: Delete, line: a[i], oldIndex: i, newIndex: j})
			i++
		default:
			ops = append(ops, edit{op: Insert, line: b[j], oldIndex: i, newIndex: j})
			j++
		}
	}
	return ops
}

// group collects the edit script into hunks, merging changes separated by
// at most 2*Context unchanged lines.
func group(ops []edit) []Hunk {
	var hunks []Hunk

	for start := 0; start < len(ops); {
		first := nextChange(ops, start)
		if first < 0 {
			break
		}

		last := first
		for {
			next := nextChange(ops, last+1)
			if next < 0 || next-last-1 > 2*Context {
				break
			}
			last = next
		}

		from := max(0, first-Context)
		to := min(len(ops), last+1+Context)
		hunks = append(hunks, hunk(ops[from:to]))
		start = to
	}
	return hunks
}

func nextChange(ops []edit, from int) int {
	for i := from; i < len(ops); i++ {
		if ops[i].op != Equal {
			return i
		}
	}
	return -1
}

func hunk(ops []edit) Hunk {
	h := Hunk{
		OldStart: ops[0].oldIndex + 1,
		NewStart: ops[0].newIndex + 1,
		Lines:    make([]Line, 0, len(ops)),
	}
	for _, e := range ops {
		h.Lines = append(h.Lines, Line{Op: e.op, Text: e.line.text, NoEOL: !e.line.eol})
		if e.op != Insert {
			h.OldCount++
		}
		if e.op != Delete {
			h.NewCount++
		}
	}
	// An empty side starts at the line before the hunk, as in GNU diff.
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}
