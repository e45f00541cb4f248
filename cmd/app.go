package cmd

import (
	"io"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

// NewApp builds the command line application. Files are read from and written to fs;
// diagnostics go to logOutput.
func NewApp(name string, fs afero.Fs, stdout, logOutput io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = "eBPF instruction window generator"
	app.Description = "Finds jump free instruction windows in an eBPF trace and ranks them by memory access count"
	app.Writer = stdout
	app.ErrWriter = logOutput
	app.Commands = []*cli.Command{
		CreateGenerateCommand(NewGenerateAction(fs, logOutput)),
		CreateBitmapCommand(NewBitmapAction(fs, logOutput)),
	}
	return app
}
