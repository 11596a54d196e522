package ingestion

import (
	"context"
	"log"

	"github.com/jonathan/ats-scanner/internal/fetch"
)

// Document is ingested text together with where it came from.
type Document struct {
	Text     string
	Metadata *Metadata
}

// LoadOptions controls how references are resolved.
type LoadOptions struct {
	UseBrowser bool         // Render short job pages in headless Chrome
	Verbose    bool         // Log each step
	S3         ObjectGetter // Required for s3:// references
}

// Load resolves ref by its shape: http(s) URLs are fetched as job postings,
// s3:// references are downloaded, and anything else is read from disk.
func Load(ctx context.Context, ref string, opts LoadOptions) (*Document, error) {
	var (
		text string
		meta *Metadata
		err  error
	)

	switch {
	case fetch.IsURL(ref):
		text, meta, err = IngestFromURL(ctx, ref, opts.UseBrowser, opts.Verbose)
	case IsS3URI(ref):
		text, meta, err = IngestFromS3(ctx, opts.S3, ref, opts.Verbose)
	default:
		text, err = ExtractText(ref)
		if err == nil {
			meta = NewMetadata(text, ref, FormatFromName(ref))
		}
	}
	if err != nil {
		return nil, err
	}

	if opts.Verbose {
		log.Printf("[VERBOSE] Loaded %s (%s, %d chars)", ref, meta.Format, meta.Chars)
	}
	return &Document{Text: text, Metadata: meta}, nil
}
