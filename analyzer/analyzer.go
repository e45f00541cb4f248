// Package analyzer provides the interface and result types of the window analysis.
package analyzer

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/bpf-window-gen/asmparser"
	"github.com/ChainSafe/bpf-window-gen/common/bitset"
)

// ErrNoWindows is returned when no boundary free range fits the window bounds.
var ErrNoWindows = errors.New("no windows found")

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze finds the windows of trace and ranks them. maxWindows <= 0 keeps every window.
	// When no window fits the bounds it returns ErrNoWindows together with a
	// non-nil Result holding the boundaries and costs, so callers can still
	// write the boundary diagnostic.
	Analyze(trace *asmparser.Trace, maxWindows int) (*Result, error)
}

// Window is an inclusive range of trace positions that no jump enters or leaves.
type Window struct {
	Left  int `json:"left"`
	Right int `json:"right"`
	Cost  int `json:"cost"` // number of memory instructions in the range
}

// Len returns the number of instructions in the window.
func (w Window) Len() int {
	return w.Right - w.Left + 1
}

func (w Window) String() string {
	return fmt.Sprintf("[%d,%d]=%d", w.Left, w.Right, w.Cost)
}

// CostMap holds, for every position, the number of memory instructions up to and including it.
type CostMap []int

// Range returns the number of memory instructions in [left, right].
func (c CostMap) Range(left, right int) int {
	if left == 0 {
		return c[right]
	}
	return c[right] - c[left-1]
}

// Result is the outcome of one analysis run.
type Result struct {
	Boundaries *bitset.Bitset // positions a window may not span
	Costs      CostMap
	Windows    []Window // ranked, highest cost first, capped
	Extracted  int      // windows found before the cap was applied
	Malformed  int      // trace lines that failed to decode
	OutOfRange int      // jump targets that fell outside the trace
}
