package renderer

import (
	"fmt"
	"io"

	"github.com/ChainSafe/bpf-window-gen/analyzer"
)

// Renderer defines the interface for rendering ranked windows in different formats.
type Renderer interface {
	// Render takes the analysis result and outputs its windows in the desired format to the provided writer.
	Render(result *analyzer.Result, output io.Writer) error

	// Format returns the name of the output format (e.g., "json", "text").
	Format() string
}

// New returns the renderer for format.
func New(format string) (Renderer, error) {
	switch format {
	case "", "text":
		return NewTextRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}
