// Package format turns source files into pretty-printed output.
//
// An Engine maps each input language to a Producer that builds a document
// from source, lays the document out at the configured width and returns
// both the styled tokens and the plain formatted bytes.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/prettydoc/pkg/config"
	"github.com/yaklabco/prettydoc/pkg/doc"
	"github.com/yaklabco/prettydoc/pkg/langdetect"
)

// ErrUnsupportedLanguage is returned when no producer handles the input.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Producer builds a document from source text. Width is the target line
// width, which some producers need for nested layouts.
type Producer interface {
	Produce(ctx context.Context, src []byte, width int) (doc.Doc, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc func(ctx context.Context, src []byte, width int) (doc.Doc, error)

// Produce implements Producer.
func (f ProducerFunc) Produce(ctx context.Context, src []byte, width int) (doc.Doc, error) {
	return f(ctx, src, width)
}

// Language registers a producer under a language name.
type Language struct {
	Name     string
	Producer Producer

	// TrimTrailingSpace removes trailing blanks from every output line.
	TrimTrailingSpace bool
}

// Request describes one formatting job.
type Request struct {
	// Path names the input. It drives language detection and may be empty.
	Path string

	// Content is the source text.
	Content []byte

	// Language forces the input language; empty or "auto" detects it.
	Language string

	// Width overrides the configured width when positive.
	Width int
}

// Result is the outcome of a formatting job.
type Result struct {
	Language string
	Width    int

	// Tokens is the laid-out token stream.
	Tokens []doc.Token

	// Output is the formatted text, ending in a newline unless empty.
	Output []byte
}

// Engine formats content in any registered language.
type Engine struct {
	cfg        *config.Config
	languages  map[string]Language
	extensions map[string]string
}

// NewEngine creates an engine for cfg with the built-in languages
// registered. A nil cfg uses config.NewConfig.
func NewEngine(cfg *config.Config) *Engine {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	engine := &Engine{
		cfg:        cfg,
		languages:  make(map[string]Language),
		extensions: make(map[string]string),
	}
	for _, lang := range builtinLanguages(cfg) {
		engine.Register(lang)
	}
	for name, lc := range cfg.Languages {
		for _, ext := range lc.Extensions {
			engine.extensions[strings.ToLower(ext)] = name
		}
	}
	return engine
}

// Register adds or replaces a language.
func (e *Engine) Register(lang Language) {
	e.languages[lang.Name] = lang
}

// Languages returns the registered language names, sorted.
func (e *Engine) Languages() []string {
	return slices.Sorted(maps.Keys(e.languages))
}

// Config returns the engine configuration.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Detect returns the language of the named content: the configured
// language when it is not "auto", then configured extensions, then
// langdetect.
func (e *Engine) Detect(path string, content []byte) string {
	if lang := e.cfg.Language; lang != "" && lang != config.LanguageAuto {
		return lang
	}
	if lang, ok := e.extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return langdetect.Detect(path, content)
}

// Width returns the effective width for lang.
func (e *Engine) Width(lang string) int {
	if width := e.cfg.WidthFor(lang); width > 0 {
		return width
	}
	return config.DefaultWidth
}

// Document builds the document for req without laying it out. It returns
// the resolved language and width along with the document.
func (e *Engine) Document(ctx context.Context, req Request) (doc.Doc, string, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", 0, fmt.Errorf("format cancelled: %w", err)
	}

	name := req.Language
	if name == "" || name == config.LanguageAuto {
		name = e.Detect(req.Path, req.Content)
	}
	lang, ok := e.languages[name]
	if !ok {
		if name == "" {
			return nil, "", 0, fmt.Errorf("%w: cannot detect language of %s", ErrUnsupportedLanguage, displayPath(req.Path))
		}
		return nil, name, 0, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, name)
	}

	width := req.Width
	if width <= 0 {
		width = e.Width(name)
	}

	d, err := lang.Producer.Produce(ctx, req.Content, width)
	if err != nil {
		return nil, name, width, fmt.Errorf("%s: %w", name, err)
	}
	return d, name, width, nil
}

// Format lays out req and returns tokens and formatted bytes.
func (e *Engine) Format(ctx context.Context, req Request) (*Result, error) {
	d, name, width, err := e.Document(ctx, req)
	if err != nil {
		return nil, err
	}

	tokens := doc.Pretty(width, d)
	text := doc.Contents(tokens)
	if e.languages[name].TrimTrailingSpace {
		text = trimTrailingSpace(text)
	}

	return &Result{
		Language: name,
		Width:    width,
		Tokens:   tokens,
		Output:   finish(text),
	}, nil
}

// trimTrailingSpace removes spaces and tabs at the end of each line.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// finish ends non-empty output with exactly one newline.
func finish(s string) []byte {
	out := bytes.TrimRight([]byte(s), "\n")
	if len(out) == 0 {
		return []byte{}
	}
	return append(out, '\n')
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "standard input"
	}
	return path
}
