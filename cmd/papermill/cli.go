package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fwojciec/papermill"
	"github.com/fwojciec/papermill/harvest"
)

// Source names accepted by the harvest command.
const (
	SourceArxiv   = "arxiv"
	SourceDOAJ    = "doaj"
	SourceHrcak   = "hrcak"
	SourceScholar = "scholar"
	SourceGoogle  = "google"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Config     papermill.Config
	ConfigPath string
	Harvester  *harvest.Harvester
	Trainer    papermill.Trainer

	// Progress draws a progress bar on Stderr instead of printing one line
	// per page.
	Progress bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" default:"papermill.toml" env:"PAPERMILL_CONFIG" help:"Path to the TOML config file"`
	Verbose bool   `short:"v" help:"Log every request and pipeline step"`

	DOAJAPIKey   string `name:"doaj-api-key" env:"DOAJ_API_KEY" help:"DOAJ API key"`
	SerpAPIKey   string `name:"serpapi-key" env:"SERPAPI_KEY" help:"SerpAPI key for Google Scholar"`
	GoogleAPIKey string `name:"google-api-key" env:"GOOGLE_API_KEY" help:"Google Custom Search API key"`
	GoogleCX     string `name:"google-cx" env:"GOOGLE_CX" help:"Google Custom Search engine ID"`

	Harvest HarvestCmd `cmd:"" help:"Search a source and add its documents to the corpus"`
	Scrape  ScrapeCmd  `cmd:"" help:"Add the text of a single web page to the corpus"`
	Train   TrainCmd   `cmd:"" help:"Train the model on a stored site corpus"`
	Similar SimilarCmd `cmd:"" help:"List the tokens closest to a word"`
	Init    InitCmd    `cmd:"" help:"Create the data directories and a default config file"`
	Sources SourcesCmd `cmd:"" help:"List the available search sources"`
}

// applySecrets copies credentials given as flags or environment variables
// into cfg.
func (c *CLI) applySecrets(cfg *papermill.Config) {
	if c.DOAJAPIKey != "" {
		cfg.DOAJAPIKey = c.DOAJAPIKey
	}
	if c.SerpAPIKey != "" {
		cfg.SerpAPIKey = c.SerpAPIKey
	}
	if c.GoogleAPIKey != "" {
		cfg.GoogleAPIKey = c.GoogleAPIKey
	}
	if c.GoogleCX != "" {
		cfg.GoogleCX = c.GoogleCX
	}
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	Source   string   `short:"s" default:"arxiv" enum:"arxiv,doaj,hrcak,scholar,google" help:"Search source (arxiv, doaj, hrcak, scholar, google)"`
	Pages    int      `short:"p" default:"1" help:"Number of result pages to walk"`
	Keywords []string `arg:"" help:"Search keywords"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// TrainCmd is the "train" subcommand.
type TrainCmd struct {
	Site string `arg:"" help:"Site key of the corpus, e.g. export.arxiv.org"`
}

// SimilarCmd is the "similar" subcommand.
type SimilarCmd struct {
	Word string `arg:"" help:"Query word"`
	N    int    `short:"n" default:"5" help:"Number of neighbors"`
}

// InitCmd is the "init" subcommand.
type InitCmd struct{}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// printError writes err to w. Stage errors keep their stage prefix.
func printError(w io.Writer, err error) {
	var stageErr *harvest.StageError
	if errors.As(err, &stageErr) {
		fmt.Fprintf(w, "error: %s\n", stageErr.Error())
		return
	}
	fmt.Fprintf(w, "error: %s\n", papermill.ErrorMessage(err))
}
