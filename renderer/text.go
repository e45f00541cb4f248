// Package renderer provides a way to render ranked windows in different formats.
package renderer

import (
	"io"
	"strconv"
	"strings"

	"github.com/ChainSafe/bpf-window-gen/analyzer"
)

// TextRenderer formats the windows as command line arguments for the rewriting pass:
//
//	--win_s_list <l0>,<l1>,... --win_e_list <r0>,<r1>,...
type TextRenderer struct{}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer() Renderer {
	return &TextRenderer{}
}

// Render writes the window bounds in ranked order.
func (r *TextRenderer) Render(result *analyzer.Result, output io.Writer) error {
	starts := make([]string, 0, len(result.Windows))
	ends := make([]string, 0, len(result.Windows))
	for _, w := range result.Windows {
		starts = append(starts, strconv.Itoa(w.Left))
		ends = append(ends, strconv.Itoa(w.Right))
	}

	var report strings.Builder
	report.WriteString("--win_s_list ")
	report.WriteString(strings.Join(starts, ","))
	report.WriteString(" --win_e_list ")
	report.WriteString(strings.Join(ends, ","))

	_, err := io.WriteString(output, report.String())
	return err
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
