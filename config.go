package papermill

import (
	"path/filepath"
	"time"
)

// DefaultUserAgent identifies the harvester as a desktop browser; several
// sources serve block pages to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTML extractor names accepted in Config.HTMLExtractor.
const (
	HTMLExtractorGoquery     = "goquery"
	HTMLExtractorTrafilatura = "trafilatura"
	HTMLExtractorReadability = "readability"
)

// Lemmatizer names accepted in Config.Lemmatizer.
const (
	LemmatizerDictionary = "dictionary"
	LemmatizerSnowball   = "snowball"
	LemmatizerNone       = "none"
)

// Config holds every setting the pipeline components are built from.
type Config struct {
	DownloadDir           string `toml:"download_dir"`
	TextDir               string `toml:"text_dir"`
	CorpusDir             string `toml:"corpus_dir"`
	ModelPath             string `toml:"model_path"`
	PageSize              int    `toml:"page_size"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`

	OCREnabled       bool   `toml:"ocr_enabled"`
	NativePDFEnabled bool   `toml:"native_pdf_enabled"`
	MinNativeChars   int    `toml:"min_native_chars"`
	OCRDPI           int    `toml:"ocr_dpi"`
	OCRLanguage      string `toml:"ocr_language"`

	UserAgent         string    `toml:"user_agent"`
	RequestsPerSecond float64   `toml:"requests_per_second"`
	RetryDelays       []Seconds `toml:"retry_delays"`

	HTMLExtractor string `toml:"html_extractor"`
	Lemmatizer    string `toml:"lemmatizer"`

	Embedding Hyperparameters `toml:"embedding"`

	// Credentials are read from the environment, never from the file.
	DOAJAPIKey   string `toml:"-"`
	SerpAPIKey   string `toml:"-"`
	GoogleAPIKey string `toml:"-"`
	GoogleCX     string `toml:"-"`
}

// Seconds is a duration expressed as fractional seconds in config files.
type Seconds float64

// Duration converts s to a time.Duration.
func (s Seconds) Duration() time.Duration {
	return time.Duration(float64(s) * float64(time.Second))
}

// DefaultConfig returns a configuration rooted at the current directory.
func DefaultConfig() Config {
	return Config{
		DownloadDir:           "downloads",
		TextDir:               "texts",
		CorpusDir:             "corpus",
		ModelPath:             filepath.Join("models", "word2vec.model"),
		PageSize:              DefaultPageSize,
		RequestTimeoutSeconds: 10,
		OCREnabled:            true,
		NativePDFEnabled:      true,
		MinNativeChars:        100,
		OCRDPI:                300,
		OCRLanguage:           "eng",
		UserAgent:             DefaultUserAgent,
		RequestsPerSecond:     1,
		RetryDelays:           []Seconds{1, 2, 4},
		HTMLExtractor:         HTMLExtractorGoquery,
		Lemmatizer:            LemmatizerDictionary,
		Embedding:             DefaultHyperparameters(),
	}
}

// Validate returns an error if the configuration cannot run a pipeline.
func (c *Config) Validate() error {
	switch {
	case c.DownloadDir == "":
		return Errorf(EINVALID, "download_dir required")
	case c.TextDir == "":
		return Errorf(EINVALID, "text_dir required")
	case c.CorpusDir == "":
		return Errorf(EINVALID, "corpus_dir required")
	case c.ModelPath == "":
		return Errorf(EINVALID, "model_path required")
	case c.PageSize < 1:
		return Errorf(EINVALID, "page_size must be positive, got %d", c.PageSize)
	case c.RequestTimeoutSeconds < 1:
		return Errorf(EINVALID, "request_timeout_seconds must be positive, got %d", c.RequestTimeoutSeconds)
	case !c.OCREnabled && !c.NativePDFEnabled:
		return Errorf(EINVALID, "at least one of ocr_enabled and native_pdf_enabled must be set")
	case c.RequestsPerSecond < 0:
		return Errorf(EINVALID, "requests_per_second must not be negative")
	}

	switch c.HTMLExtractor {
	case HTMLExtractorGoquery, HTMLExtractorTrafilatura, HTMLExtractorReadability:
	default:
		return Errorf(EINVALID, "unknown html_extractor %q", c.HTMLExtractor)
	}

	switch c.Lemmatizer {
	case LemmatizerDictionary, LemmatizerSnowball, LemmatizerNone:
	default:
		return Errorf(EINVALID, "unknown lemmatizer %q", c.Lemmatizer)
	}

	return c.Embedding.Validate()
}

// RequestTimeout returns the network timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Retries returns the configured retry delays as durations.
func (c *Config) Retries() []time.Duration {
	delays := make([]time.Duration, len(c.RetryDelays))
	for i, d := range c.RetryDelays {
		delays[i] = d.Duration()
	}
	return delays
}
