// Package doc implements a Wadler-style pretty printer.
//
// A Doc describes a family of candidate layouts for some structured text:
// plain text, potential line breaks, indented blocks, concatenations and
// unions of two alternative renderings. Pretty picks the single best layout
// for a maximum line width and returns it as a sequence of styled tokens.
//
// The search looks ahead at most one line: when it meets a Union it lays
// out the primary branch and keeps it if the text up to the next line break
// fits in the remaining width, otherwise it commits to the fallback. Union
// branches and layout continuations are lazy and memoized, so the cost of
// printing is proportional to the size of the output rather than to the
// number of alternatives the document describes.
//
// Basic usage:
//
//	d := doc.Group(doc.Concat(doc.Text("Hi", ""), doc.Line(), doc.Text("there", "")))
//	fmt.Println(doc.String(80, d)) // Hi there
//	fmt.Println(doc.String(5, d))  // Hi\nthere
//
// Styles are opaque tags carried from Text to the emitted tokens. The
// package never interprets them; renderers map them to colors.
//
// Widths are measured in terminal cells (see Width), so East Asian wide
// characters count as two columns.
package doc
