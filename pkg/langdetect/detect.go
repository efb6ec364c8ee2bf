// Package langdetect picks the input language of a file.
// It uses go-enry for extension and content classification and adds the
// document-expression language, which enry does not know about.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names returned by Detect.
const (
	HTML     = "html"
	Markdown = "markdown"
	Doc      = "pdoc"
)

// enryNames maps go-enry language names to ours.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]string{
	"HTML":     HTML,
	"Markdown": Markdown,
}

// docExtensions are the extensions of document-expression sources.
//
//nolint:gochecknoglobals // Read-only lookup table.
var docExtensions = []string{".pdoc"}

// docStart matches the first token of a document-expression source: a
// binding, a builtin call or a string literal.
//
//nolint:gochecknoglobals // Compiled once.
var docStart = regexp.MustCompile(`^(let\s+[A-Za-z_]\w*\s*=|(nil|line|softline|text|words|verbatim|nest|concat|group|flatten|fill|join|union)\b|")`)

// Detect returns the language of the file at path with the given content,
// or "" when it is none of the supported languages. A recognized extension
// decides, even when it names an unsupported language; content is only
// consulted for paths without one, such as standard input.
func Detect(path string, content []byte) string {
	if lang := ByExtension(path); lang != "" {
		return lang
	}
	if KnownExtension(path) {
		return ""
	}
	return ByContent(content)
}

// KnownExtension reports whether the extension of path names any language
// go-enry knows, supported or not.
func KnownExtension(path string) bool {
	if filepath.Ext(path) == "" {
		return false
	}
	return len(enry.GetLanguagesByExtension(path, nil, nil)) > 0
}

// ByExtension returns the language implied by the extension of path, or "".
func ByExtension(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if slices.Contains(docExtensions, ext) {
		return Doc
	}

	for _, name := range enry.GetLanguagesByExtension(path, nil, nil) {
		if lang, ok := enryNames[name]; ok {
			return lang
		}
	}
	return ""
}

// ByContent guesses the language from content alone, or returns "".
func ByContent(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	// With two candidates the classifier is never "safe"; its ranking is
	// still the best guess left.
	lang, _ := enry.GetLanguageByClassifier(content, []string{"HTML", "Markdown"})
	return enryNames[lang]
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(trimmed []byte) string {
	lower := bytes.ToLower(trimmed[:min(len(trimmed), 512)])
	if bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html")) {
		return HTML
	}
	if docStart.Match(trimmed) {
		return Doc
	}
	if trimmed[0] == '<' && bytes.Contains(trimmed, []byte("</")) {
		return HTML
	}
	if trimmed[0] == '#' || bytes.HasPrefix(trimmed, []byte("---")) {
		return Markdown
	}
	return ""
}

// Extensions returns the file extensions recognized for lang, with
// leading dot.
func Extensions(lang string) []string {
	switch lang {
	case HTML:
		return []string{".html", ".htm", ".xhtml"}
	case Markdown:
		return []string{".md", ".markdown", ".mdown", ".mkd"}
	case Doc:
		return slices.Clone(docExtensions)
	default:
		return nil
	}
}

// AllExtensions returns the extensions of every supported language.
func AllExtensions() []string {
	var out []string
	for _, lang := range []string{HTML, Markdown, Doc} {
		out = append(out, Extensions(lang)...)
	}
	return out
}

// IsVendored reports whether path is conventionally third-party content
// (vendor/, node_modules/ and the like).
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}
