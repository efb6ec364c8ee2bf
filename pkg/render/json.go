package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/prettydoc/pkg/doc"
)

// JSONRenderer writes the token stream as a JSON array of
// {"content", "style"} objects.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(w io.Writer, tokens []doc.Token) error {
	if tokens == nil {
		tokens = []doc.Token{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(tokens); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
