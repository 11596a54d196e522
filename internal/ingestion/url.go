package ingestion

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/ats-scanner/internal/fetch"
)

// IngestFromURL fetches a job posting page and returns its readable text.
// Platform-specific selectors are applied for known job boards. If useBrowser is
// true, pages whose HTTP text is too short are re-rendered in headless Chrome.
func IngestFromURL(ctx context.Context, urlStr string, useBrowser bool, verbose bool) (string, *Metadata, error) {
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
	}

	text, platform, err := fetch.TextWithFallback(ctx, urlStr, nil, useBrowser, verbose)
	if err != nil {
		return "", nil, &SourceError{Source: urlStr, Message: "failed to fetch job posting", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", nil, &ExtractionError{Source: urlStr, Format: FormatHTML, Message: "page has no readable text", Cause: ErrEmptyDocument}
	}
	if verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars", len(text))
	}

	meta := NewMetadata(text, urlStr, FormatHTML)
	meta.Platform = string(platform)
	return text, meta, nil
}
