package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes where an ingested document came from.
type Metadata struct {
	Source    string `json:"source"`             // Path, URL or s3:// reference as given
	Format    Format `json:"format"`             // Decoder used for the content
	Timestamp string `json:"timestamp"`          // RFC3339 format
	Hash      string `json:"hash"`               // SHA256 hex digest of the extracted text
	Chars     int    `json:"chars"`              // Length of the extracted text in runes
	Platform  string `json:"platform,omitempty"` // Detected job board platform for URLs
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(text string, source string, format Format) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(text),
		Chars:     len([]rune(text)),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
