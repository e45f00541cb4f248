package renderer

import (
	"bufio"
	"io"

	"github.com/ChainSafe/bpf-window-gen/common/bitset"
)

// WriteBoundaries writes one line per trace position: 1 when the position is a boundary, 0 otherwise.
func WriteBoundaries(boundaries *bitset.Bitset, output io.Writer) error {
	w := bufio.NewWriter(output)
	for i := 0; i < boundaries.Len(); i++ {
		bit := byte('0')
		if boundaries.IsSet(i) {
			bit = '1'
		}
		if err := w.WriteByte(bit); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
