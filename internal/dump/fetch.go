// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dump

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/quotegraph/internal/httputil"
	"github.com/pdiddy/quotegraph/pkg/types"
)

// Fetch downloads the dump archive named by cfg.DumpURL to cfg.DumpFile.
// If the file already exists the download is skipped; the skipped return
// value reports which happened. The archive is written to a temporary
// file in the destination directory and renamed on success, so a failed
// download never leaves a truncated dump behind.
func Fetch(ctx context.Context, client *http.Client, cfg types.FetchConfig, w io.Writer) (skipped bool, err error) {
	if _, err := os.Stat(cfg.DumpFile); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", cfg.DumpFile)
		return true, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DumpFile), 0o755); err != nil {
		return false, fmt.Errorf("creating dump directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.DumpURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	fmt.Fprintf(w, "downloading: %s\n", cfg.DumpURL)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return false, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("HTTP %d from %s", resp.StatusCode, cfg.DumpURL)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(cfg.DumpFile), ".fetch-*.tmp")
	if err != nil {
		return false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, cfg.DumpFile); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("renaming temp file: %w", err)
	}

	fmt.Fprintf(w, "wrote %s (%d bytes)\n", cfg.DumpFile, n)
	return false, nil
}
