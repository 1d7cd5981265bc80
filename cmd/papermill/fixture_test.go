package main_test

import (
	"context"

	"github.com/fwojciec/papermill"
	"github.com/fwojciec/papermill/harvest"
	"github.com/fwojciec/papermill/mock"
	"github.com/fwojciec/papermill/normalize"
)

// newHarvester returns a harvester whose source yields one PDF candidate on
// page 1 and whose storage and model are mocks. Tests override fields.
func newHarvester() *harvest.Harvester {
	return &harvest.Harvester{
		Source: &mock.SourceConnector{
			NameFn: func() string { return "arxiv" },
			SiteFn: func() string { return "export.arxiv.org" },
			SearchFn: func(_ context.Context, _ string, page int) ([]*papermill.CandidateDocument, error) {
				if page > 1 {
					return nil, nil
				}
				return []*papermill.CandidateDocument{{
					Title:      "Neural Nets",
					SourceURL:  "https://example.org/abs/1",
					PayloadURL: "https://example.org/a.pdf",
					SourceKind: papermill.SourceKindAPIEntry,
				}}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, req papermill.FetchRequest) (*papermill.Payload, error) {
				return &papermill.Payload{URL: req.URL, Bytes: []byte("%PDF-1.4 fake"), ContentType: papermill.ContentTypePDF}, nil
			},
		},
		Payloads: &mock.PayloadStore{
			SaveFn: func(context.Context, string, papermill.PayloadKind, *papermill.Payload) (string, error) {
				return "downloads/Neural_Nets.pdf", nil
			},
		},
		Texts: &mock.TextStore{
			SaveFn: func(context.Context, string, *papermill.ExtractedText) (string, error) {
				return "texts/Neural_Nets.txt", nil
			},
		},
		PDFExtractor: &mock.TextExtractor{
			ExtractFn: func(context.Context, *papermill.Payload) (*papermill.ExtractedText, error) {
				return &papermill.ExtractedText{
					Pages:  []string{"Neural networks learn representations"},
					Kind:   papermill.PayloadKindPDF,
					Method: papermill.MethodNative,
				}, nil
			},
		},
		HTMLExtractor: &mock.TextExtractor{
			ExtractFn: func(context.Context, *papermill.Payload) (*papermill.ExtractedText, error) {
				return &papermill.ExtractedText{
					Title:  "Lecture notes",
					Pages:  []string{"Gradient descent converges"},
					Kind:   papermill.PayloadKindHTML,
					Method: papermill.MethodHTML,
				}, nil
			},
		},
		Normalizer: normalize.NewNormalizer(nil),
		Corpus: &mock.CorpusStore{
			AppendFn: func(context.Context, string, []papermill.Sentence) error { return nil },
		},
		Trainer: &mock.Trainer{
			UpdateFn: func(_ context.Context, sentences []papermill.Sentence) (*papermill.ModelStats, error) {
				return &papermill.ModelStats{VocabularySize: 4, NewTokens: 4, Sentences: len(sentences), Created: true}, nil
			},
		},
	}
}
