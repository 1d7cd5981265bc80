package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/papermill"
)

// Run executes the train command.
func (c *TrainCmd) Run(deps *Dependencies) error {
	if strings.TrimSpace(c.Site) == "" {
		err := papermill.Errorf(papermill.EINVALID, "site required")
		printError(deps.Stderr, err)
		return err
	}

	stats, err := deps.Harvester.Retrain(deps.Ctx, c.Site)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	verb := "updated"
	if stats.Created {
		verb = "created"
	}
	fmt.Fprintf(deps.Stdout, "Model %s from %d sentences: %d tokens (+%d new)\n",
		verb, stats.Sentences, stats.VocabularySize, stats.NewTokens)
	return nil
}
