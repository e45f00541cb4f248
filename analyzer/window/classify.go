package window

import (
	"github.com/ChainSafe/bpf-window-gen/asmparser"
	"github.com/ChainSafe/bpf-window-gen/common/bitset"
	"github.com/ChainSafe/bpf-window-gen/profile"
	"github.com/charmbracelet/log"
)

// Classification marks, per trace position, control flow boundaries and memory instructions.
type Classification struct {
	Boundaries *bitset.Bitset
	Preferred  *bitset.Bitset
	OutOfRange int
}

// Classify marks jump sources, in range jump targets and memory instructions.
// Malformed instructions are neither boundaries nor preferred, even when a jump lands on them.
func Classify(trace *asmparser.Trace, prof *profile.Profile, logger *log.Logger) *Classification {
	c := &Classification{
		Boundaries: bitset.New(trace.Len()),
		Preferred:  bitset.New(trace.Len()),
	}

	for _, instr := range trace.Instructions {
		if instr.Malformed {
			continue
		}
		class := instr.Class(prof.ClassMask)
		switch {
		case prof.IsJump(class):
			_ = c.Boundaries.Set(instr.Position)
			target := instr.JumpTarget()
			switch {
			case target < 0 || target >= trace.Len():
				c.OutOfRange++
				logger.Debug("jump target outside trace", "position", instr.Position, "target", target)
			case trace.Instructions[target].Malformed:
				logger.Debug("jump target is a malformed line", "position", instr.Position, "target", target)
			default:
				_ = c.Boundaries.Set(target)
			}
		case prof.IsMemory(class):
			_ = c.Preferred.Set(instr.Position)
		}
	}
	return c
}
