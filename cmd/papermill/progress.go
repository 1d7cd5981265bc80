package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/papermill/harvest"
	"github.com/schollz/progressbar/v3"
)

// reporter turns harvest progress events into terminal output. Skips are
// always printed to out; page progress is either a bar on errw or one line
// per page on out.
type reporter struct {
	out  io.Writer
	errw io.Writer
	bar  *progressbar.ProgressBar
	draw bool
}

func newReporter(out, errw io.Writer, draw bool) *reporter {
	return &reporter{out: out, errw: errw, draw: draw}
}

func (r *reporter) handle(event harvest.ProgressEvent) {
	switch event.Type {
	case harvest.ProgressPage:
		r.finish()
		if !r.draw {
			fmt.Fprintf(r.out, "  Page %d: %d candidates\n", event.Page, event.Total)
			return
		}
		r.bar = progressbar.NewOptions(event.Total,
			progressbar.OptionSetWriter(r.errw),
			progressbar.OptionSetDescription(fmt.Sprintf("page %d", event.Page)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(r.errw, "\n")
			}),
		)
	case harvest.ProgressCompleted:
		r.set(event.Completed)
	case harvest.ProgressSkipped:
		if r.bar != nil {
			_ = r.bar.Clear()
		}
		fmt.Fprintln(r.out, event.Error)
		r.set(event.Completed)
	case harvest.ProgressFinished:
		r.finish()
	}
}

func (r *reporter) set(n int) {
	if r.bar != nil && n > 0 {
		_ = r.bar.Set(n)
	}
}

func (r *reporter) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// printReport writes the run summary.
func printReport(w io.Writer, report *harvest.Report) {
	fmt.Fprintf(w, "Downloaded %d documents (%s), extracted %d, %d sentences",
		report.Downloaded, harvest.FormatBytes(report.Bytes), report.Extracted, report.Sentences)
	if report.Duplicates > 0 {
		fmt.Fprintf(w, ", %d duplicates", report.Duplicates)
	}
	if len(report.Failures) > 0 {
		fmt.Fprintf(w, ", %d skipped", len(report.Failures))
	}
	fmt.Fprintln(w)

	if report.Stats == nil {
		fmt.Fprintln(w, "Model unchanged")
		return
	}
	verb := "updated"
	if report.Stats.Created {
		verb = "created"
	}
	fmt.Fprintf(w, "Model %s: %d tokens (+%d new)\n", verb, report.Stats.VocabularySize, report.Stats.NewTokens)
}
