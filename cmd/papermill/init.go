package main

import (
	"fmt"

	"github.com/fwojciec/papermill/fs"
	"github.com/fwojciec/papermill/toml"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	if err := fs.InitLayout(deps.Config); err != nil {
		printError(deps.Stderr, err)
		return err
	}

	written, err := toml.WriteConfig(deps.ConfigPath, deps.Config)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}
	if written {
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", deps.ConfigPath)
	} else {
		fmt.Fprintf(deps.Stdout, "Kept existing %s\n", deps.ConfigPath)
	}
	fmt.Fprintf(deps.Stdout, "Data directories: %s, %s, %s\n",
		deps.Config.DownloadDir, deps.Config.TextDir, deps.Config.CorpusDir)
	return nil
}
