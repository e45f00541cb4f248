// Package bpf parses eBPF instruction traces written as `{code src dst off imm}` lines.
package bpf

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ChainSafe/bpf-window-gen/asmparser"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// previewSize bounds how much of a malformed line is echoed to the log.
const previewSize = 80

var instructionRegex = regexp.MustCompile(`^\{(\d+)[ \t]+(\d+)[ \t]+(\d+)[ \t]+([+-]?\d+)[ \t]+([+-]?\d+)\}$`)

// ParserImpl reads eBPF traces through an afero file system, one instruction per line.
type ParserImpl struct {
	fs     afero.Fs
	logger *log.Logger
}

// NewParser returns a parser reading traces from fs. Malformed lines are reported on logger.
func NewParser(fs afero.Fs, logger *log.Logger) asmparser.Parser {
	return &ParserImpl{fs: fs, logger: logger}
}

func (p *ParserImpl) Parse(path string) (*asmparser.Trace, error) {
	fpath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("error getting the absolute filepath: %s: %w", path, err)
	}

	tracefile, err := p.fs.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("error opening filepath: %s: %w", fpath, err)
	}
	defer func() {
		_ = tracefile.Close()
	}()

	return p.ParseReader(tracefile)
}

// ParseReader reads a trace from r. Lines have no length limit: a line that
// does not decode, however long, becomes a malformed position.
func (p *ParserImpl) ParseReader(r io.Reader) (*asmparser.Trace, error) {
	trace := &asmparser.Trace{}
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("error reading trace: %w", err)
		}
		if len(line) > 0 {
			p.addLine(trace, strings.TrimSuffix(line, "\n"))
		}
		if err == io.EOF {
			break
		}
	}
	if trace.Len() == 0 {
		return nil, asmparser.ErrEmptyTrace
	}
	return trace, nil
}

func (p *ParserImpl) addLine(trace *asmparser.Trace, line string) {
	position := trace.Len()
	instr, err := parseLine(line)
	if err != nil {
		p.logger.Warn("invalid instruction format", "position", position, "line", preview(line), "err", err)
		instr = asmparser.Instruction{Malformed: true}
		trace.Malformed = append(trace.Malformed, position)
	}
	instr.Position = position
	instr.Raw = line
	trace.Instructions = append(trace.Instructions, instr)
}

func preview(line string) string {
	if len(line) <= previewSize {
		return line
	}
	return fmt.Sprintf("%s... (%d bytes)", line[:previewSize], len(line))
}

// parseLine decodes one `{code src dst off imm}` line. Every field must fit its bit width.
func parseLine(line string) (asmparser.Instruction, error) {
	line = strings.TrimRight(line, " \t\r")
	matches := instructionRegex.FindStringSubmatch(line)
	if len(matches) != 6 {
		return asmparser.Instruction{}, fmt.Errorf("expected {code src dst off imm}")
	}

	code, err := strconv.ParseUint(matches[1], 10, 8)
	if err != nil {
		return asmparser.Instruction{}, fmt.Errorf("failed to parse opcode: %w", err)
	}
	src, err := strconv.ParseUint(matches[2], 10, 8)
	if err != nil {
		return asmparser.Instruction{}, fmt.Errorf("failed to parse src register: %w", err)
	}
	dst, err := strconv.ParseUint(matches[3], 10, 8)
	if err != nil {
		return asmparser.Instruction{}, fmt.Errorf("failed to parse dst register: %w", err)
	}
	off, err := strconv.ParseInt(matches[4], 10, 16)
	if err != nil {
		return asmparser.Instruction{}, fmt.Errorf("failed to parse offset: %w", err)
	}
	imm, err := strconv.ParseInt(matches[5], 10, 32)
	if err != nil {
		return asmparser.Instruction{}, fmt.Errorf("failed to parse immediate: %w", err)
	}

	return asmparser.Instruction{
		Opcode:    uint8(code),
		Src:       uint8(src),
		Dst:       uint8(dst),
		Offset:    int16(off),
		Immediate: int32(imm),
	}, nil
}
