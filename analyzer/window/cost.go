package window

import (
	"github.com/ChainSafe/bpf-window-gen/analyzer"
	"github.com/ChainSafe/bpf-window-gen/common/bitset"
)

// Accumulate builds the running count of preferred positions.
func Accumulate(preferred *bitset.Bitset) analyzer.CostMap {
	costs := make(analyzer.CostMap, preferred.Len())
	running := 0
	for i := range costs {
		if preferred.IsSet(i) {
			running++
		}
		costs[i] = running
	}
	return costs
}
