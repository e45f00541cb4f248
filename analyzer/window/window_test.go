package window

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ChainSafe/bpf-window-gen/analyzer"
	"github.com/ChainSafe/bpf-window-gen/asmparser"
	"github.com/ChainSafe/bpf-window-gen/asmparser/bpf"
	"github.com/ChainSafe/bpf-window-gen/logging"
	"github.com/ChainSafe/bpf-window-gen/profile"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

type scenario struct {
	trace      []byte
	max        int
	windows    []analyzer.Window
	costs      analyzer.CostMap
	boundaries []byte
	err        string
}

func loadScenario(t *testing.T, path string) scenario {
	t.Helper()
	archive, err := txtar.ParseFile(path)
	require.NoError(t, err)

	var sc scenario
	for _, f := range archive.Files {
		switch f.Name {
		case "trace":
			sc.trace = f.Data
		case "max":
			sc.max, err = strconv.Atoi(strings.TrimSpace(string(f.Data)))
			require.NoError(t, err)
		case "windows":
			for _, line := range strings.Split(strings.TrimSpace(string(f.Data)), "\n") {
				var w analyzer.Window
				_, err := fmt.Sscanf(line, "%d %d %d", &w.Left, &w.Right, &w.Cost)
				require.NoError(t, err, "windows line %q", line)
				sc.windows = append(sc.windows, w)
			}
		case "costs":
			for _, field := range strings.Fields(string(f.Data)) {
				c, err := strconv.Atoi(field)
				require.NoError(t, err)
				sc.costs = append(sc.costs, c)
			}
		case "boundaries":
			sc.boundaries = f.Data
		case "error":
			sc.err = strings.TrimSpace(string(f.Data))
		default:
			t.Fatalf("unknown section %q in %s", f.Name, path)
		}
	}
	return sc
}

func parseTrace(t *testing.T, data []byte) *asmparser.Trace {
	t.Helper()
	trace, err := bpf.NewParser(afero.NewMemMapFs(), logging.Discard()).ParseReader(bytes.NewReader(data))
	require.NoError(t, err)
	return trace
}

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			sc := loadScenario(t, file)
			trace := parseTrace(t, sc.trace)

			result, err := NewAnalyzer(profile.Default(), logging.Discard()).Analyze(trace, sc.max)
			if sc.err != "" {
				assert.EqualError(t, err, sc.err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, sc.windows, result.Windows)
			if sc.costs != nil {
				assert.Equal(t, sc.costs, result.Costs)
			}
			if sc.boundaries != nil {
				var got strings.Builder
				for i := 0; i < result.Boundaries.Len(); i++ {
					if result.Boundaries.IsSet(i) {
						got.WriteString("1\n")
					} else {
						got.WriteString("0\n")
					}
				}
				assert.Equal(t, string(sc.boundaries), got.String())
			}
		})
	}
}

func TestAnalyzeCounters(t *testing.T) {
	sc := loadScenario(t, filepath.Join("testdata", "out_of_range.txtar"))
	result, err := NewAnalyzer(profile.Default(), logging.Discard()).Analyze(parseTrace(t, sc.trace), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, result.OutOfRange)
	assert.Equal(t, 0, result.Malformed)
	assert.Equal(t, 2, result.Extracted)

	sc = loadScenario(t, filepath.Join("testdata", "malformed.txtar"))
	result, err = NewAnalyzer(profile.Default(), logging.Discard()).Analyze(parseTrace(t, sc.trace), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Malformed)
}

func TestAnalyzeEmptyTrace(t *testing.T) {
	_, err := NewAnalyzer(profile.Default(), logging.Discard()).Analyze(&asmparser.Trace{}, 0)
	assert.ErrorIs(t, err, asmparser.ErrEmptyTrace)
}

func TestAnalyzeCustomBounds(t *testing.T) {
	sc := loadScenario(t, filepath.Join("testdata", "too_short.txtar"))
	prof := profile.Default()
	prof.MinWindow = 2
	prof.MaxWindow = 4

	result, err := NewAnalyzer(prof, logging.Discard()).Analyze(parseTrace(t, sc.trace), 0)
	require.NoError(t, err)
	assert.Equal(t, []analyzer.Window{{Left: 0, Right: 3, Cost: 1}}, result.Windows)
}

func TestAnalyzeNoWindowsKeepsPartialResult(t *testing.T) {
	sc := loadScenario(t, filepath.Join("testdata", "too_short.txtar"))

	result, err := NewAnalyzer(profile.Default(), logging.Discard()).Analyze(parseTrace(t, sc.trace), 0)
	require.ErrorIs(t, err, analyzer.ErrNoWindows)
	require.NotNil(t, result)
	assert.Equal(t, 4, result.Boundaries.Len())
	assert.Equal(t, analyzer.CostMap{1, 1, 1, 1}, result.Costs)
	assert.Zero(t, result.Extracted)
	assert.Empty(t, result.Windows)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	trace := parseTrace(t, randomTrace(42, 400))
	a := NewAnalyzer(profile.Default(), logging.Discard())

	first, err := a.Analyze(trace, 7)
	require.NoError(t, err)
	second, err := a.Analyze(trace, 7)
	require.NoError(t, err)
	assert.Equal(t, first.Windows, second.Windows)
}
