package main

import (
	"fmt"
	"text/tabwriter"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	cfg := deps.Config
	sources := []struct {
		name, desc string
		ready      bool
	}{
		{SourceArxiv, "arXiv Atom API", true},
		{SourceDOAJ, "Directory of Open Access Journals", true},
		{SourceHrcak, "Hrcak portal of Croatian journals", true},
		{SourceScholar, "Google Scholar via SerpAPI (SERPAPI_KEY)", cfg.SerpAPIKey != ""},
		{SourceGoogle, "Google Custom Search (GOOGLE_API_KEY, GOOGLE_CX)", cfg.GoogleAPIKey != "" && cfg.GoogleCX != ""},
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	for _, s := range sources {
		status := "ready"
		if !s.ready {
			status = "missing credentials"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.name, s.desc, status)
	}
	return w.Flush()
}
