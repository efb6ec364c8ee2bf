package doc

import (
	"fmt"
	"strconv"
	"strings"
)

// Describe returns a compact textual form of d's structure, for debugging
// and tests. Union branches are not forced; an unforced branch is shown as
// "…".
func Describe(d Doc) string {
	var sb strings.Builder
	describe(&sb, d)
	return sb.String()
}

func describe(sb *strings.Builder, d Doc) {
	switch d := d.(type) {
	case NilNode:
		sb.WriteString("nil")
	case TextNode:
		sb.WriteString("text(")
		sb.WriteString(strconv.Quote(d.Content))
		if d.Style != "" {
			sb.WriteString(", ")
			sb.WriteString(string(d.Style))
		}
		sb.WriteString(")")
	case LineNode:
		if d.Reduced == " " {
			sb.WriteString("line")
			return
		}
		sb.WriteString("line(")
		sb.WriteString(strconv.Quote(d.Reduced))
		sb.WriteString(")")
	case NestNode:
		fmt.Fprintf(sb, "nest(%d, ", d.Indent)
		describe(sb, d.Body)
		sb.WriteString(")")
	case ConcatNode:
		sb.WriteString("concat(")
		for i, p := range d.Parts {
			if i > 0 {
				sb.WriteString(", ")
			}
			describe(sb, p)
		}
		sb.WriteString(")")
	case UnionNode:
		sb.WriteString("union(")
		describeLazy(sb, d.Primary)
		sb.WriteString(", ")
		describeLazy(sb, d.Fallback)
		sb.WriteString(")")
	default:
		fmt.Fprintf(sb, "%T", d)
	}
}

func describeLazy(sb *strings.Builder, l *Lazy[Doc]) {
	if !l.Forced() {
		sb.WriteString("…")
		return
	}
	describe(sb, l.Force())
}
