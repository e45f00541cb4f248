package window

import (
	"github.com/ChainSafe/bpf-window-gen/analyzer"
	"github.com/ChainSafe/bpf-window-gen/common/list"
)

// Rank sorts windows by descending cost and keeps the first limit of them.
// Among equal costs the merge keeps the window coming from the first half,
// so the ordering matches a recursive linked list merge sort exactly.
func Rank(windows *list.List[analyzer.Window], limit int) []analyzer.Window {
	windows.MergeSort(func(first, second analyzer.Window) bool {
		return first.Cost >= second.Cost
	})
	windows.Truncate(limit)
	return windows.Slice()
}
