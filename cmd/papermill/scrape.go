package main

import (
	"fmt"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Scraping %s\n", c.URL)

	r := newReporter(deps.Stdout, deps.Stderr, false)
	report, err := deps.Harvester.Scrape(deps.Ctx, c.URL, r.handle)
	if report != nil {
		printReport(deps.Stdout, report)
	}
	if err != nil {
		printError(deps.Stderr, err)
		return err
	}
	return nil
}
