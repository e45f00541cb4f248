// Package asmparser defines the decoded instruction trace shared by the analysis pipeline.
package asmparser

import (
	"errors"
	"io"
)

// ErrEmptyTrace is returned when a trace contains no lines at all.
var ErrEmptyTrace = errors.New("trace is empty")

// Parser holds interface for parsing an instruction trace
type Parser interface {
	// Parse reads the trace stored at path.
	Parse(path string) (*Trace, error)
	// ParseReader reads a trace from r, one instruction per line.
	ParseReader(r io.Reader) (*Trace, error)
}

// Instruction is one decoded trace line.
type Instruction struct {
	Position  int    // 0-based line index in the trace
	Opcode    uint8  // low bits hold the instruction class
	Src       uint8  // source register
	Dst       uint8  // destination register
	Offset    int16  // jump displacement
	Immediate int32  // immediate operand
	Malformed bool   // line did not decode; the position is kept but carries no meaning
	Raw       string // original text of the line
}

// Class returns the instruction class selected by mask.
func (i Instruction) Class(mask uint8) uint8 {
	return i.Opcode & mask
}

// JumpTarget returns the position a jump at this instruction lands on.
// The result can fall outside the trace.
func (i Instruction) JumpTarget() int {
	return i.Position + int(i.Offset) + 1
}

// Trace is the ordered list of instructions of one run.
type Trace struct {
	Instructions []Instruction
	Malformed    []int // positions of lines that failed to decode
}

// Len returns the number of positions in the trace, malformed lines included.
func (t *Trace) Len() int {
	return len(t.Instructions)
}
