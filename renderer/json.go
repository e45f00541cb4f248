package renderer

import (
	"encoding/json"
	"io"

	"github.com/ChainSafe/bpf-window-gen/analyzer"
)

// JSONRenderer renders windows in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(result *analyzer.Result, output io.Writer) error {
	windows := result.Windows
	if windows == nil {
		windows = []analyzer.Window{}
	}
	return json.NewEncoder(output).Encode(windows)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
