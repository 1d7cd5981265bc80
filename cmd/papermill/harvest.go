package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/papermill"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	q := papermill.Query{
		Keywords:  strings.Join(c.Keywords, " "),
		PageCount: c.Pages,
	}
	if err := q.Validate(); err != nil {
		printError(deps.Stderr, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Harvesting %q from %s\n", q.Keywords, deps.Harvester.Source.Name())

	r := newReporter(deps.Stdout, deps.Stderr, deps.Progress)
	report, err := deps.Harvester.Run(deps.Ctx, q, r.handle)
	r.finish()
	if report != nil {
		printReport(deps.Stdout, report)
	}
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}
	return nil
}
