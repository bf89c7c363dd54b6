package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "quotegraph/0.1"). Dump mirrors require a descriptive one.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the dump download stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// DumpURL is the URL of the wiki export archive.
	DumpURL string `json:"dump_url" yaml:"dump_url"`

	// DumpFile is the local path the archive is written to.
	DumpFile string `json:"dump_file" yaml:"dump_file"`
}

// ParseConfig holds settings for the extraction stage.
type ParseConfig struct {
	// DumpFile is the wiki export to read, plain XML or .bz2.
	DumpFile string `json:"dump_file" yaml:"dump_file"`

	// RecordsFile is the JSON Lines file extracted quotes are written to.
	RecordsFile string `json:"records_file" yaml:"records_file"`

	// PageLimit caps the number of content pages processed. Zero means
	// no limit; small values are useful for trial runs.
	PageLimit int `json:"page_limit" yaml:"page_limit"`

	// MinQuoteLen drops stripped quotes of this many runes or fewer
	// (default 10). Very short bullet lines are almost never quotations.
	MinQuoteLen int `json:"min_quote_len" yaml:"min_quote_len"`
}

// GraphConfig holds settings for the quote graph store.
type GraphConfig struct {
	// DBPath is the SQLite database file path.
	DBPath string `json:"db_path" yaml:"db_path"`

	// BatchSize is the number of records loaded per transaction (default 1000).
	BatchSize int `json:"batch_size" yaml:"batch_size"`
}

// SearchConfig holds settings for graph queries.
type SearchConfig struct {
	// MaxResults is the default maximum number of results (default 5).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Parse  ParseConfig  `json:"parse" yaml:"parse"`
	Graph  GraphConfig  `json:"graph" yaml:"graph"`
	Search SearchConfig `json:"search" yaml:"search"`

	// LogLevel selects the zerolog level: debug, info, warn, or error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}
