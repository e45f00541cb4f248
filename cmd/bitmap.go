// Package cmd defines all the commands for the cli
package cmd

import (
	"fmt"
	"io"

	"github.com/ChainSafe/bpf-window-gen/analyzer/window"
	"github.com/ChainSafe/bpf-window-gen/asmparser/bpf"
	"github.com/ChainSafe/bpf-window-gen/renderer"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// BitmapOutputPathFlag is the output of the bitmap command, stdout by default.
var BitmapOutputPathFlag = &cli.PathFlag{
	Name:     "output",
	Usage:    "File path for the boundary diagnostic, '-' for stdout",
	Required: false,
	Value:    stdoutPath,
}

func CreateBitmapCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "bitmap",
		Usage:       "Writes the control flow boundary of every trace position",
		Description: "Writes one line per trace position: 1 for a jump source or target, 0 otherwise",
		ArgsUsage:   "<trace>",
		Action:      action,
		Flags: []cli.Flag{
			ProfileFlag,
			BitmapOutputPathFlag,
			DebugFlag,
		},
	}
}

// NewBitmapAction returns the bitmap action reading and writing files on fs.
func NewBitmapAction(fs afero.Fs, logOutput io.Writer) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected <trace>, got %d arguments", ctx.NArg())
		}
		logger := commandLogger(ctx, logOutput)

		prof, err := loadProfile(fs, ctx.Path(ProfileFlag.Name))
		if err != nil {
			return fmt.Errorf("error loading profile: %w", err)
		}

		trace, err := bpf.NewParser(fs, logger).Parse(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("error reading trace: %w", err)
		}

		classification := window.Classify(trace, prof, logger)
		return writeOutput(fs, ctx.Path(BitmapOutputPathFlag.Name), ctx.App.Writer, func(w io.Writer) error {
			return renderer.WriteBoundaries(classification.Boundaries, w)
		})
	}
}
