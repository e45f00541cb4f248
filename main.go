package main

import (
	"context"
	"os"

	"github.com/ChainSafe/bpf-window-gen/cmd"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

func main() {
	app := cmd.NewApp(os.Args[0], afero.NewOsFs(), os.Stdout, os.Stderr)
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
