package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/papermill"
	"github.com/fwojciec/papermill/bloom"
	"github.com/fwojciec/papermill/fitz"
	pmfs "github.com/fwojciec/papermill/fs"
	"github.com/fwojciec/papermill/golem"
	"github.com/fwojciec/papermill/goquery"
	"github.com/fwojciec/papermill/google"
	"github.com/fwojciec/papermill/gosseract"
	"github.com/fwojciec/papermill/harvest"
	pmhttp "github.com/fwojciec/papermill/http"
	"github.com/fwojciec/papermill/normalize"
	"github.com/fwojciec/papermill/pdf"
	"github.com/fwojciec/papermill/readability"
	pmslog "github.com/fwojciec/papermill/slog"
	"github.com/fwojciec/papermill/snowball"
	"github.com/fwojciec/papermill/toml"
	"github.com/fwojciec/papermill/trafilatura"
	"github.com/fwojciec/papermill/word2vec"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Credentials may come from a local .env file.
	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded during Run. Tests may set it together with
	// SkipConfigFile to bypass the config file.
	Config         papermill.Config
	SkipConfigFile bool

	// Progress enables the terminal progress bar.
	Progress bool
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Config:   papermill.DefaultConfig(),
		Progress: true,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		Progress: m.Progress,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("papermill"),
		kong.Description("Harvest academic documents into a text corpus and word embedding model."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'papermill --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	cfg := m.Config
	if !m.SkipConfigFile {
		cfg, err = toml.LoadConfig(cli.Config)
		if papermill.ErrorCode(err) == papermill.ENOTFOUND && cli.Config == toml.DefaultPath {
			err = nil
		}
		if err != nil {
			fmt.Fprintf(stderr, "error: config: %s\n", papermill.ErrorMessage(err))
			return err
		}
	}
	cli.applySecrets(&cfg)
	deps.Config = cfg
	deps.ConfigPath = cli.Config

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch kongCtx.Selected().Name {
	case "harvest":
		h, err := m.harvester(ctx, cfg, deps.Logger, cli.Harvest.Source)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", papermill.ErrorMessage(err))
			return err
		}
		deps.Harvester = h
	case "scrape", "train":
		h, err := m.harvester(ctx, cfg, deps.Logger, "")
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", papermill.ErrorMessage(err))
			return err
		}
		deps.Harvester = h
	case "similar":
		deps.Trainer = word2vec.NewTrainer(cfg.ModelPath, cfg.Embedding)
	}

	return kongCtx.Run(deps)
}

// harvester wires the pipeline from cfg. An empty source name leaves the
// harvester without a connector, for scrape and train.
func (m *Main) harvester(ctx context.Context, cfg papermill.Config, logger *slog.Logger, source string) (*harvest.Harvester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := pmfs.InitLayout(cfg); err != nil {
		return nil, err
	}
	lem, err := lemmatizer(cfg)
	if err != nil {
		return nil, err
	}

	fetcher := pmslog.NewLoggingFetcher(pmhttp.NewFetcher(
		pmhttp.WithTimeout(cfg.RequestTimeout()),
		pmhttp.WithUserAgent(cfg.UserAgent),
		pmhttp.WithRateLimit(cfg.RequestsPerSecond),
		pmhttp.WithRetryDelays(cfg.Retries()),
	), logger)

	h := &harvest.Harvester{
		Fetcher:       fetcher,
		Payloads:      pmfs.NewPayloadStore(cfg.DownloadDir),
		Texts:         pmfs.NewTextStore(cfg.TextDir),
		PDFExtractor:  pmslog.NewLoggingExtractor(pdfExtractor(cfg), logger),
		HTMLExtractor: pmslog.NewLoggingExtractor(htmlExtractor(cfg), logger),
		Normalizer:    normalize.NewNormalizer(lem),
		Corpus:        pmslog.NewLoggingCorpusStore(pmfs.NewCorpusStore(cfg.CorpusDir), logger),
		Trainer:       pmslog.NewLoggingTrainer(word2vec.NewTrainer(cfg.ModelPath, cfg.Embedding), logger),
		Dedup:         bloom.NewFilter(bloom.DefaultCapacity, bloom.DefaultFPRate),
	}

	if source != "" {
		conn, err := connector(ctx, cfg, fetcher, source)
		if err != nil {
			return nil, err
		}
		h.Source = pmslog.NewLoggingConnector(conn, logger)
	}
	return h, nil
}

// connector builds the named source connector.
func connector(ctx context.Context, cfg papermill.Config, fetcher papermill.Fetcher, source string) (papermill.SourceConnector, error) {
	scanner := goquery.NewPDFScanner(fetcher)
	switch source {
	case SourceArxiv:
		return pmhttp.NewArxivConnector(fetcher, pmhttp.WithPageSize(cfg.PageSize)), nil
	case SourceDOAJ:
		return pmhttp.NewDOAJConnector(fetcher,
			goquery.NewLinkResolver(fetcher, goquery.DOAJPatterns()...),
			pmhttp.WithPageSize(cfg.PageSize),
			pmhttp.WithAPIKey(cfg.DOAJAPIKey),
		), nil
	case SourceHrcak:
		return goquery.NewHrcakConnector(fetcher, goquery.DefaultHrcakBaseURL, cfg.PageSize), nil
	case SourceScholar:
		if cfg.SerpAPIKey == "" {
			return nil, papermill.Errorf(papermill.EINVALID, "scholar requires SERPAPI_KEY")
		}
		return pmhttp.NewSerpAPIConnector(fetcher, scanner,
			pmhttp.WithPageSize(cfg.PageSize),
			pmhttp.WithAPIKey(cfg.SerpAPIKey),
		), nil
	case SourceGoogle:
		return google.NewCustomSearchConnector(ctx, google.Config{
			APIKey:   cfg.GoogleAPIKey,
			EngineID: cfg.GoogleCX,
			PageSize: cfg.PageSize,
		}, scanner)
	}
	return nil, papermill.Errorf(papermill.EINVALID, "unknown source %q", source)
}

func pdfExtractor(cfg papermill.Config) papermill.TextExtractor {
	e := &harvest.PDFExtractor{MinNativeChars: cfg.MinNativeChars}
	if cfg.NativePDFEnabled {
		e.Native = pdf.NewExtractor()
	}
	if cfg.OCREnabled {
		e.OCR = &harvest.OCRExtractor{
			Rasterizer: fitz.NewRasterizer(),
			Recognizer: gosseract.NewRecognizer(cfg.OCRLanguage),
			DPI:        float64(cfg.OCRDPI),
		}
	}
	return e
}

func htmlExtractor(cfg papermill.Config) papermill.TextExtractor {
	switch cfg.HTMLExtractor {
	case papermill.HTMLExtractorTrafilatura:
		return trafilatura.NewExtractor()
	case papermill.HTMLExtractorReadability:
		return readability.NewExtractor()
	}
	return goquery.NewHTMLExtractor()
}

func lemmatizer(cfg papermill.Config) (papermill.Lemmatizer, error) {
	switch cfg.Lemmatizer {
	case papermill.LemmatizerSnowball:
		return snowball.NewStemmer(), nil
	case papermill.LemmatizerNone:
		return nil, nil
	}
	return golem.NewLemmatizer()
}
