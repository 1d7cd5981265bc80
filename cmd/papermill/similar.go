package main

import (
	"fmt"
	"strings"
)

// Run executes the similar command.
func (c *SimilarCmd) Run(deps *Dependencies) error {
	neighbors, err := deps.Trainer.MostSimilar(deps.Ctx, strings.ToLower(c.Word), c.N)
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}

	for _, n := range neighbors {
		fmt.Fprintf(deps.Stdout, "%-24s %.4f\n", n.Token, n.Similarity)
	}
	return nil
}
