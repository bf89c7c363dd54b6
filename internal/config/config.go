// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves pipeline configuration from, in order of
// precedence: command-line flags (bound by the CLI), environment variables
// with the QUOTEGRAPH_ prefix, a .env file in the working directory, a
// quotegraph.yaml config file, and built-in defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/quotegraph/pkg/types"
)

// Defaults for every configuration key. Documented here once; flags that
// mirror these keys repeat them in their help text.
const (
	DefaultDumpURL = "https://dumps.wikimedia.org/enwikiquote/latest/enwikiquote-latest-pages-articles.xml.bz2"
	DefaultDumpFile    = "data/dumps/enwikiquote-pages-articles.xml.bz2"
	DefaultRecordsFile = "data/records/quotes.jsonl"
	DefaultDBPath      = "data/index/quotes.db"

	DefaultBatchSize   = 1000
	DefaultSearchLimit = 5
	DefaultMinQuoteLen = 10
	DefaultHTTPTimeout = 5 * time.Minute
	DefaultUserAgent   = "quotegraph/0.1 (github.com/pdiddy/quotegraph)"
	DefaultLogLevel    = "info"
)

// Bind loads .env into the process environment (silently skipped when the
// file is absent), wires the QUOTEGRAPH_ env prefix into v, and registers
// defaults for every key. Call once before reading the config file.
func Bind(v *viper.Viper) {
	_ = godotenv.Load()

	v.SetEnvPrefix("QUOTEGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("fetch.dump_url", DefaultDumpURL)
	v.SetDefault("fetch.dump_file", DefaultDumpFile)
	v.SetDefault("fetch.timeout", DefaultHTTPTimeout)
	v.SetDefault("fetch.user_agent", DefaultUserAgent)
	v.SetDefault("parse.dump_file", DefaultDumpFile)
	v.SetDefault("parse.records_file", DefaultRecordsFile)
	v.SetDefault("parse.page_limit", 0)
	v.SetDefault("parse.min_quote_len", DefaultMinQuoteLen)
	v.SetDefault("graph.db_path", DefaultDBPath)
	v.SetDefault("graph.batch_size", DefaultBatchSize)
	v.SetDefault("search.max_results", DefaultSearchLimit)
	v.SetDefault("log_level", DefaultLogLevel)
}

// FromViper materializes a PipelineConfig from the resolved settings.
func FromViper(v *viper.Viper) (types.PipelineConfig, error) {
	cfg := types.PipelineConfig{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("fetch.timeout"),
				UserAgent: v.GetString("fetch.user_agent"),
			},
			DumpURL:  v.GetString("fetch.dump_url"),
			DumpFile: v.GetString("fetch.dump_file"),
		},
		Parse: types.ParseConfig{
			DumpFile:    v.GetString("parse.dump_file"),
			RecordsFile: v.GetString("parse.records_file"),
			PageLimit:   v.GetInt("parse.page_limit"),
			MinQuoteLen: v.GetInt("parse.min_quote_len"),
		},
		Graph: types.GraphConfig{
			DBPath:    v.GetString("graph.db_path"),
			BatchSize: v.GetInt("graph.batch_size"),
		},
		Search: types.SearchConfig{
			MaxResults: v.GetInt("search.max_results"),
		},
		LogLevel: v.GetString("log_level"),
	}

	if cfg.Graph.BatchSize <= 0 {
		return cfg, fmt.Errorf("graph.batch_size must be positive, got %d", cfg.Graph.BatchSize)
	}
	if cfg.Parse.PageLimit < 0 {
		return cfg, fmt.Errorf("parse.page_limit must be zero or positive, got %d", cfg.Parse.PageLimit)
	}
	return cfg, nil
}
