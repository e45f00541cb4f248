// Package profile holds the instruction set and window configuration used by the analyzer.
package profile

import (
	"fmt"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// eBPF instruction classes, selected by the low three bits of the opcode.
const (
	ClassLD    uint8 = 0x00
	ClassLDX   uint8 = 0x01
	ClassST    uint8 = 0x02
	ClassSTX   uint8 = 0x03
	ClassALU   uint8 = 0x04
	ClassJMP   uint8 = 0x05
	ClassJMP32 uint8 = 0x06
	ClassALU64 uint8 = 0x07

	ClassMask uint8 = 0x07
)

// Default window bounds, in instructions, inclusive.
const (
	DefaultMinWindow = 5
	DefaultMaxWindow = 10
)

// Profile represents the configuration for one instruction set.
type Profile struct {
	Name          string  `yaml:"name"`
	ClassMask     uint8   `yaml:"class_mask"`
	JumpClasses   []uint8 `yaml:"jump_classes"`
	MemoryClasses []uint8 `yaml:"memory_classes"`
	MinWindow     int     `yaml:"min_window"`
	MaxWindow     int     `yaml:"max_window"`
}

// Default returns the eBPF profile.
func Default() *Profile {
	return &Profile{
		Name:          "bpf",
		ClassMask:     ClassMask,
		JumpClasses:   []uint8{ClassJMP, ClassJMP32},
		MemoryClasses: []uint8{ClassLD, ClassLDX, ClassST, ClassSTX},
		MinWindow:     DefaultMinWindow,
		MaxWindow:     DefaultMaxWindow,
	}
}

// LoadProfile loads a profile from a YAML file. Fields missing from the file keep their default value.
func LoadProfile(fs afero.Fs, filename string) (*Profile, error) {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}

	prof := Default()
	if err := yaml.Unmarshal(data, prof); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := prof.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}
	return prof, nil
}

// Validate checks that the window bounds and class sets are consistent.
func (p *Profile) Validate() error {
	if p.MinWindow < 1 {
		return fmt.Errorf("min_window must be at least 1, got %d", p.MinWindow)
	}
	if p.MinWindow > p.MaxWindow {
		return fmt.Errorf("min_window %d is greater than max_window %d", p.MinWindow, p.MaxWindow)
	}
	if p.ClassMask == 0 {
		return fmt.Errorf("class_mask must not be zero")
	}
	for _, class := range append(slices.Clone(p.JumpClasses), p.MemoryClasses...) {
		if class&^p.ClassMask != 0 {
			return fmt.Errorf("class %#x is outside class_mask %#x", class, p.ClassMask)
		}
	}
	for _, class := range p.JumpClasses {
		if slices.Contains(p.MemoryClasses, class) {
			return fmt.Errorf("class %#x is both a jump and a memory class", class)
		}
	}
	return nil
}

// IsJump reports whether class marks a control flow transfer.
func (p *Profile) IsJump(class uint8) bool {
	return slices.Contains(p.JumpClasses, class)
}

// IsMemory reports whether class accesses memory.
func (p *Profile) IsMemory(class uint8) bool {
	return slices.Contains(p.MemoryClasses, class)
}
