// Package window implements analyzer.Analyzer by extracting and ranking boundary free instruction windows.
package window

import (
	"github.com/ChainSafe/bpf-window-gen/analyzer"
	"github.com/ChainSafe/bpf-window-gen/asmparser"
	"github.com/ChainSafe/bpf-window-gen/profile"
	"github.com/charmbracelet/log"
)

type window struct {
	profile *profile.Profile
	logger  *log.Logger
}

// NewAnalyzer creates an analyzer using the class sets and window bounds of profile.
func NewAnalyzer(profile *profile.Profile, logger *log.Logger) analyzer.Analyzer {
	return &window{profile: profile, logger: logger}
}

func (w *window) Analyze(trace *asmparser.Trace, maxWindows int) (*analyzer.Result, error) {
	if trace == nil || trace.Len() == 0 {
		return nil, asmparser.ErrEmptyTrace
	}

	classification := Classify(trace, w.profile, w.logger)
	costs := Accumulate(classification.Preferred)
	extracted := Extract(classification.Boundaries, costs, Bounds{
		Min: w.profile.MinWindow,
		Max: w.profile.MaxWindow,
	})

	result := &analyzer.Result{
		Boundaries: classification.Boundaries,
		Costs:      costs,
		Extracted:  extracted.Len(),
		Malformed:  len(trace.Malformed),
		OutOfRange: classification.OutOfRange,
	}
	if result.Extracted == 0 {
		return result, analyzer.ErrNoWindows
	}

	result.Windows = Rank(extracted, maxWindows)
	for _, win := range result.Windows {
		w.logger.Debug("window", "range", win.String())
	}
	w.logger.Info("analysis complete",
		"instructions", trace.Len(),
		"boundaries", result.Boundaries.Count(),
		"extracted", result.Extracted,
		"kept", len(result.Windows),
		"malformed", result.Malformed)
	return result, nil
}
