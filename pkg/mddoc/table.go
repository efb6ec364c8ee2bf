package mddoc

import (
	"strings"

	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// table lays out a GFM table with every column padded to its widest cell.
func (c *converter) table(t *east.Table) doc.Doc {
	cols := len(t.Alignments)

	var rows [][]doc.Doc
	var widths [][]int
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		cells := make([]doc.Doc, cols)
		cellWidths := make([]int, cols)
		i := 0
		for cell := row.FirstChild(); cell != nil && i < cols; cell = cell.NextSibling() {
			b := &inlineBuilder{}
			c.inline(b, cell, "")
			cells[i] = doc.Join(doc.Text(" ", ""), b.allWords())
			cellWidths[i] = doc.Width(doc.String(0, cells[i]))
			i++
		}
		for ; i < cols; i++ {
			cells[i] = doc.Nil
		}
		rows = append(rows, cells)
		widths = append(widths, cellWidths)
	}

	colWidths := make([]int, cols)
	for i := range colWidths {
		colWidths[i] = 3
		for _, w := range widths {
			colWidths[i] = max(colWidths[i], w[i])
		}
	}

	lines := make([]doc.Doc, 0, len(rows)+1)
	for r, cells := range rows {
		parts := make([]doc.Doc, 0, 2*cols+1)
		parts = append(parts, doc.Text("| ", StyleMarker))
		for i, cell := range cells {
			if i > 0 {
				parts = append(parts, doc.Text(" | ", StyleMarker))
			}
			parts = append(parts, pad(cell, widths[r][i], colWidths[i], t.Alignments[i]))
		}
		parts = append(parts, doc.Text(" |", StyleMarker))
		lines = append(lines, doc.Concat(parts...))

		if r == 0 {
			lines = append(lines, delimiterRow(t.Alignments, colWidths))
		}
	}
	return doc.Join(doc.SoftLine(), lines)
}

func pad(cell doc.Doc, width, target int, align east.Alignment) doc.Doc {
	space := target - width
	if space <= 0 {
		return cell
	}
	left := 0
	switch align {
	case east.AlignRight:
		left = space
	case east.AlignCenter:
		left = space / 2
	case east.AlignLeft, east.AlignNone:
	}
	return doc.Concat(
		doc.Text(strings.Repeat(" ", left), ""),
		cell,
		doc.Text(strings.Repeat(" ", space-left), ""),
	)
}

func delimiterRow(aligns []east.Alignment, widths []int) doc.Doc {
	cells := make([]string, len(aligns))
	for i, a := range aligns {
		w := widths[i]
		switch a {
		case east.AlignLeft:
			cells[i] = ":" + strings.Repeat("-", w-1)
		case east.AlignRight:
			cells[i] = strings.Repeat("-", w-1) + ":"
		case east.AlignCenter:
			cells[i] = ":" + strings.Repeat("-", w-2) + ":"
		case east.AlignNone:
			cells[i] = strings.Repeat("-", w)
		}
	}
	return doc.Text("| "+strings.Join(cells, " | ")+" |", StyleMarker)
}
