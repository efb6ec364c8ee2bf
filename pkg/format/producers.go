package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/prettydoc/pkg/config"
	"github.com/yaklabco/prettydoc/pkg/doc"
	"github.com/yaklabco/prettydoc/pkg/dsl"
	"github.com/yaklabco/prettydoc/pkg/htmldoc"
	"github.com/yaklabco/prettydoc/pkg/mddoc"
)

func builtinLanguages(cfg *config.Config) []Language {
	return []Language{
		{Name: config.LanguageHTML, Producer: HTMLProducer(cfg.HTML.Indent)},
		{Name: config.LanguageMarkdown, Producer: MarkdownProducer(string(cfg.Markdown.Flavor)), TrimTrailingSpace: true},
		{Name: config.LanguageDoc, Producer: DocProducer()},
	}
}

// HTMLProducer returns a producer that parses HTML and indents child and
// attribute lists by indent spaces. Non-positive indents use
// htmldoc.DefaultIndent.
func HTMLProducer(indent int) Producer {
	if indent <= 0 {
		indent = htmldoc.DefaultIndent
	}
	printer := htmldoc.Printer{Indent: indent}

	return ProducerFunc(func(ctx context.Context, src []byte, _ int) (doc.Doc, error) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled: %w", err)
		}
		nodes, err := htmldoc.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		return printer.Document(nodes...), nil
	})
}

// MarkdownProducer returns a producer for the given Markdown flavor.
func MarkdownProducer(flavor string) Producer {
	builder := mddoc.New(flavor)
	return ProducerFunc(builder.Build)
}

// DocProducer returns a producer for document-expression sources.
func DocProducer() Producer {
	return ProducerFunc(func(ctx context.Context, src []byte, _ int) (doc.Doc, error) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build cancelled: %w", err)
		}
		return dsl.Eval(string(src))
	})
}
