package window

import (
	"github.com/ChainSafe/bpf-window-gen/analyzer"
	"github.com/ChainSafe/bpf-window-gen/common/bitset"
	"github.com/ChainSafe/bpf-window-gen/common/list"
)

// Bounds is the closed range of admissible window lengths.
type Bounds struct {
	Min int
	Max int
}

func (b Bounds) admits(size int) bool {
	return size >= b.Min && size <= b.Max
}

// Extract scans the boundaries left to right and collects every gap between
// two boundaries whose length is within bounds, in trace order. A gap running
// to the end of the trace is closed by the trace end.
func Extract(boundaries *bitset.Bitset, costs analyzer.CostMap, bounds Bounds) *list.List[analyzer.Window] {
	windows := &list.List[analyzer.Window]{}
	emit := func(left, right int) {
		if !bounds.admits(right - left) {
			return
		}
		windows.Push(analyzer.Window{
			Left:  left,
			Right: right - 1,
			Cost:  costs.Range(left, right-1),
		})
	}

	n := boundaries.Len()
	left, right := 0, 0
	for right < n {
		if !boundaries.IsSet(right) {
			right++
			continue
		}
		if left == right {
			right++
			left++
			continue
		}
		emit(left, right)
		right++
		left = right
	}

	if n > 0 && !boundaries.IsSet(n-1) {
		emit(left, right)
	}
	return windows
}
