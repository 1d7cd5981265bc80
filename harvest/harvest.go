// Package harvest orchestrates document harvesting. It coordinates source
// search, payload download and validation, text extraction, normalization,
// corpus accumulation and embedding training.
package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/papermill"
	"github.com/google/uuid"
)

// Stages named in failures and fatal errors.
const (
	StageSearch  = "search"
	StageResolve = "resolve"
	StageFetch   = "fetch"
	StageSave    = "save"
	StageExtract = "extract"
	StageText    = "text"
	StageCorpus  = "corpus"
	StageTrain   = "train"
)

// Harvester runs queries against one source and feeds the results into the
// corpus and the embedding model. Components are used sequentially.
type Harvester struct {
	Source        papermill.SourceConnector
	Fetcher       papermill.Fetcher
	Payloads      papermill.PayloadStore
	Texts         papermill.TextStore
	PDFExtractor  papermill.TextExtractor
	HTMLExtractor papermill.TextExtractor
	Normalizer    papermill.Normalizer
	Corpus        papermill.CorpusStore
	Trainer       papermill.Trainer

	// Dedup drops payload URLs already saved within the harvester's
	// lifetime. A URL whose fetch or save failed may be tried again. Nil
	// disables deduplication.
	Dedup papermill.Deduplicator
}

// Failure records a candidate or page that was skipped.
type Failure struct {
	URL   string
	Stage string
	Err   error
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("skip %s: %s: %s", f.URL, f.Stage, papermill.ErrorMessage(f.Err))
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error { return f.Err }

// Report summarizes a harvest or scrape run.
type Report struct {
	RunID string
	Site  string

	Pages      int
	Candidates int
	Duplicates int
	Downloaded int
	Bytes      int
	Extracted  int
	Sentences  int

	Failures []Failure
	Stats    *papermill.ModelStats
}

// StageError is a run-fatal error raised while writing the corpus or model.
type StageError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return e.Stage + ": " + papermill.ErrorMessage(e.Err)
}

// Unwrap returns the underlying error.
func (e *StageError) Unwrap() error { return e.Err }

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Page      int
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPage ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// Run searches every page of q, processes each candidate and, when the run
// produced sentences, appends them to the source's corpus and updates the
// model. Candidate failures are recorded in the report; a failed search
// stops paging. Only corpus and model failures return an error.
func (h *Harvester) Run(ctx context.Context, q papermill.Query, progress ProgressFunc) (*Report, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	report := &Report{RunID: uuid.NewString(), Site: h.Source.Site()}
	var sentences []papermill.Sentence

	for page := 1; page <= q.PageCount; page++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		candidates, err := h.Source.Search(ctx, q.Keywords, page)
		if err != nil {
			f := Failure{URL: fmt.Sprintf("%s page %d", h.Source.Name(), page), Stage: StageSearch, Err: err}
			report.Failures = append(report.Failures, f)
			progress(ProgressEvent{Type: ProgressSkipped, Page: page, URL: f.URL, Error: f})
			break
		}
		if len(candidates) == 0 {
			break
		}
		report.Pages++
		report.Candidates += len(candidates)
		progress(ProgressEvent{Type: ProgressPage, Page: page, Total: len(candidates)})

		for i, c := range candidates {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			out, err := h.process(ctx, c, report)
			var stageErr *StageError
			if errors.As(err, &stageErr) {
				return report, err
			} else if err != nil {
				f, _ := err.(Failure)
				progress(ProgressEvent{Type: ProgressSkipped, Page: page, Completed: i + 1, Total: len(candidates), URL: f.URL, Error: f})
				continue
			}
			sentences = append(sentences, out...)
			progress(ProgressEvent{Type: ProgressCompleted, Page: page, Completed: i + 1, Total: len(candidates), URL: c.PayloadURL})
		}
	}

	if err := h.commit(ctx, report, h.Source.Site(), sentences); err != nil {
		return report, err
	}
	progress(ProgressEvent{Type: ProgressFinished, Completed: report.Extracted, Total: report.Candidates})
	return report, nil
}

// process takes one candidate through download, validation, extraction and
// normalization. Recoverable problems come back as a Failure already
// recorded in the report; fatal storage errors come back as a *StageError.
func (h *Harvester) process(ctx context.Context, c *papermill.CandidateDocument, report *Report) ([]papermill.Sentence, error) {
	fail := func(stage string, err error) error {
		if papermill.IsFatal(err) {
			return &StageError{Stage: stage, Err: err}
		}
		f := Failure{URL: c.PayloadURL, Stage: stage, Err: err}
		if f.URL == "" {
			f.URL = c.SourceURL
		}
		report.Failures = append(report.Failures, f)
		return f
	}

	if !c.HasPayload() {
		return nil, fail(StageResolve, papermill.Errorf(papermill.ENOPAYLOAD, "no pdf link for %q", c.Title))
	}
	if h.Dedup != nil && h.Dedup.Seen(c.PayloadURL) {
		report.Duplicates++
		return nil, nil
	}

	p, err := h.Fetcher.Fetch(ctx, papermill.FetchRequest{URL: c.PayloadURL, Accept: papermill.ContentTypePDF})
	if err != nil {
		return nil, fail(StageFetch, err)
	}
	p.Origin = c

	name := DocumentName(c)
	if _, err := h.Payloads.Save(ctx, name, papermill.PayloadKindPDF, p); err != nil {
		return nil, fail(StageSave, err)
	}
	if h.Dedup != nil {
		h.Dedup.Add(c.PayloadURL)
	}
	report.Downloaded++
	report.Bytes += len(p.Bytes)

	text, err := h.PDFExtractor.Extract(ctx, p)
	if err != nil {
		return nil, fail(StageExtract, err)
	}
	if _, err := h.Texts.Save(ctx, name, text); err != nil {
		return nil, fail(StageText, err)
	}
	report.Extracted++

	return h.normalize(text), nil
}

// Scrape fetches one HTML page, extracts its text and adds it to the corpus
// of the page's host before updating the model.
func (h *Harvester) Scrape(ctx context.Context, rawURL string, progress ProgressFunc) (*Report, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}
	site := papermill.SiteKey(rawURL)
	if site == "" {
		return nil, papermill.Errorf(papermill.EINVALID, "url %q has no host", rawURL)
	}
	report := &Report{RunID: uuid.NewString(), Site: site, Pages: 1, Candidates: 1}

	c := &papermill.CandidateDocument{
		Title:      papermill.NotFound,
		SourceURL:  rawURL,
		PayloadURL: rawURL,
		SourceKind: papermill.SourceKindSearchResult,
	}
	failed := func(stage string, err error) (*Report, error) {
		if papermill.IsFatal(err) {
			return report, &StageError{Stage: stage, Err: err}
		}
		f := Failure{URL: rawURL, Stage: stage, Err: err}
		report.Failures = append(report.Failures, f)
		progress(ProgressEvent{Type: ProgressSkipped, URL: rawURL, Error: f})
		return report, nil
	}

	p, err := h.Fetcher.Fetch(ctx, papermill.FetchRequest{URL: rawURL, Accept: papermill.ContentTypeHTML})
	if err != nil {
		return failed(StageFetch, err)
	}
	p.Origin = c

	name := PageName(rawURL)
	if _, err := h.Payloads.Save(ctx, name, papermill.PayloadKindHTML, p); err != nil {
		return failed(StageSave, err)
	}
	report.Downloaded++
	report.Bytes += len(p.Bytes)

	text, err := h.HTMLExtractor.Extract(ctx, p)
	if err != nil {
		return failed(StageExtract, err)
	}
	if text.Title != "" {
		c.Title = text.Title
	}
	if _, err := h.Texts.Save(ctx, name, text); err != nil {
		return failed(StageText, err)
	}
	report.Extracted++
	progress(ProgressEvent{Type: ProgressCompleted, Completed: 1, Total: 1, URL: rawURL})

	if err := h.commit(ctx, report, site, h.normalize(text)); err != nil {
		return report, err
	}
	progress(ProgressEvent{Type: ProgressFinished, Completed: 1, Total: 1})
	return report, nil
}

func (h *Harvester) normalize(text *papermill.ExtractedText) []papermill.Sentence {
	var out []papermill.Sentence
	for _, page := range text.Pages {
		out = append(out, h.Normalizer.Normalize(page)...)
	}
	return out
}

// commit appends sentences to the corpus of site and trains on them. A run
// without sentences leaves both untouched.
func (h *Harvester) commit(ctx context.Context, report *Report, site string, sentences []papermill.Sentence) error {
	report.Sentences = len(sentences)
	if len(sentences) == 0 {
		return nil
	}
	if err := h.Corpus.Append(ctx, site, sentences); err != nil {
		return &StageError{Stage: StageCorpus, Err: err}
	}
	stats, err := h.Trainer.Update(ctx, sentences)
	if err != nil {
		return &StageError{Stage: StageTrain, Err: err}
	}
	report.Stats = stats
	return nil
}

// Retrain rebuilds on a site's stored corpus, for example after the model
// file was removed or hyperparameters changed.
func (h *Harvester) Retrain(ctx context.Context, site string) (*papermill.ModelStats, error) {
	sentences, err := h.Corpus.Sentences(ctx, site)
	if err != nil {
		return nil, &StageError{Stage: StageCorpus, Err: err}
	}
	if len(sentences) == 0 {
		return nil, &StageError{Stage: StageCorpus, Err: papermill.Errorf(papermill.ECORPUSEMPTY, "corpus for %s is empty", site)}
	}
	stats, err := h.Trainer.Update(ctx, sentences)
	if err != nil {
		return nil, &StageError{Stage: StageTrain, Err: err}
	}
	return stats, nil
}
