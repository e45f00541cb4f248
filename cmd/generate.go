package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ChainSafe/bpf-window-gen/analyzer"
	"github.com/ChainSafe/bpf-window-gen/analyzer/window"
	"github.com/ChainSafe/bpf-window-gen/asmparser/bpf"
	"github.com/ChainSafe/bpf-window-gen/logging"
	"github.com/ChainSafe/bpf-window-gen/profile"
	"github.com/ChainSafe/bpf-window-gen/renderer"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// stdoutPath selects the command's standard output instead of a file.
const stdoutPath = "-"

var (
	ProfileFlag = &cli.PathFlag{
		Name:     "profile",
		Usage:    "Path to the instruction set profile (YAML). Default: built-in eBPF profile",
		Required: false,
	}
	OutputFlag = &cli.PathFlag{
		Name:     "output",
		Usage:    "File path for the window list, '-' for stdout",
		Required: false,
		Value:    "output.txt",
	}
	FormatFlag = &cli.StringFlag{
		Name:     "format",
		Usage:    "format of the output. Options: text, json",
		Required: false,
		Value:    "text",
	}
	DebugFlag = &cli.BoolFlag{
		Name:     "debug",
		Usage:    "enable debug logging and write the boundary diagnostic",
		Required: false,
		Value:    false,
	}
	BitmapOutputFlag = &cli.PathFlag{
		Name:     "bitmap-output",
		Usage:    "File path for the boundary diagnostic written in debug mode",
		Required: false,
		Value:    "debug.txt",
	}
)

func CreateGenerateCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "generate",
		Usage:       "Extracts and ranks the jump free instruction windows of a trace",
		Description: "Extracts and ranks the jump free instruction windows of a trace",
		ArgsUsage:   "<trace> [max-windows]",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			OutputFlag,
			FormatFlag,
			DebugFlag,
			BitmapOutputFlag,
		},
	}
}

// NewGenerateAction returns the generate action reading and writing files on fs.
func NewGenerateAction(fs afero.Fs, logOutput io.Writer) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.NArg() < 1 || ctx.NArg() > 2 {
			return fmt.Errorf("expected <trace> [max-windows], got %d arguments", ctx.NArg())
		}
		maxWindows, err := parseMaxWindows(ctx.Args().Get(1))
		if err != nil {
			return err
		}

		debug := ctx.Bool(DebugFlag.Name)
		logger := commandLogger(ctx, logOutput)

		prof, err := loadProfile(fs, ctx.Path(ProfileFlag.Name))
		if err != nil {
			return fmt.Errorf("error loading profile: %w", err)
		}

		report, err := renderer.New(ctx.String(FormatFlag.Name))
		if err != nil {
			return err
		}

		source := ctx.Args().First()
		trace, err := bpf.NewParser(fs, logger).Parse(source)
		if err != nil {
			return fmt.Errorf("error reading trace: %w", err)
		}

		result, err := window.NewAnalyzer(prof, logger).Analyze(trace, maxWindows)
		if debug && result != nil {
			bitmapPath := ctx.Path(BitmapOutputFlag.Name)
			if werr := writeOutput(fs, bitmapPath, ctx.App.Writer, func(w io.Writer) error {
				return renderer.WriteBoundaries(result.Boundaries, w)
			}); werr != nil {
				return fmt.Errorf("unable to write boundary diagnostic: %w", werr)
			}
			logger.Debug("boundary diagnostic written", "path", bitmapPath)
		}
		if errors.Is(err, analyzer.ErrNoWindows) {
			logger.Error("no windows found", "instructions", trace.Len(), "malformed", len(trace.Malformed))
		}
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		if err := writeOutput(fs, ctx.Path(OutputFlag.Name), ctx.App.Writer, func(w io.Writer) error {
			return report.Render(result, w)
		}); err != nil {
			return fmt.Errorf("unable to write windows: %w", err)
		}
		return nil
	}
}

// parseMaxWindows reads the optional window cap; absent or 0 means no cap.
func parseMaxWindows(arg string) (int, error) {
	if arg == "" {
		return 0, nil
	}
	maxWindows, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid max-windows %q: %w", arg, err)
	}
	if maxWindows < 0 {
		return 0, fmt.Errorf("invalid max-windows %q: must not be negative", arg)
	}
	return maxWindows, nil
}

func loadProfile(fs afero.Fs, path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.LoadProfile(fs, path)
}

// writeOutput hands render a writer for path, or stdout when path is "-".
// The file is only created once render is called, and close errors are reported.
func writeOutput(fs afero.Fs, path string, stdout io.Writer, render func(io.Writer) error) (err error) {
	if path == stdoutPath {
		return render(stdout)
	}

	output, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open output file: %w", err)
	}
	defer func() {
		if cerr := output.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return render(output)
}

// commandLogger builds the diagnostic logger of one command run.
func commandLogger(ctx *cli.Context, logOutput io.Writer) *log.Logger {
	return logging.New(logOutput, ctx.Bool(DebugFlag.Name))
}
