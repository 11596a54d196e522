package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the extracted text length below which a page is assumed
// to be rendered client-side.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 30 * time.Second

// NeedsBrowser reports whether text extracted over plain HTTP is too short to be
// the real posting.
func NeedsBrowser(text string) bool {
	return len(strings.TrimSpace(text)) < MinContentLength
}

// Render loads rawURL in headless Chrome and returns the rendered HTML.
// Chrome or Chromium must be installed.
func Render(ctx context.Context, rawURL string, timeout time.Duration, verbose bool) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	if verbose {
		log.Printf("[BROWSER] Rendering %s", rawURL)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
	}

	if verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}
	return html, nil
}

// TextWithFallback fetches rawURL over HTTP and extracts the posting text. When
// useBrowser is set and the HTTP text is too short, the page is rendered in a
// headless browser and extracted again; a browser failure keeps the HTTP text.
func TextWithFallback(ctx context.Context, rawURL string, opts *Options, useBrowser, verbose bool) (string, Platform, error) {
	platform := DetectPlatform(rawURL)

	page, err := Get(ctx, rawURL, opts)
	if err != nil {
		return "", platform, err
	}
	text, err := MainText(page.HTML, platform)
	if err != nil {
		return "", platform, fmt.Errorf("failed to extract text from %s: %w", rawURL, err)
	}
	if verbose {
		log.Printf("[VERBOSE] %s (%s): %d chars over HTTP", rawURL, platform, len(text))
	}

	if !useBrowser || !NeedsBrowser(text) {
		return text, platform, nil
	}

	html, err := Render(ctx, rawURL, DefaultBrowserTimeout, verbose)
	if err != nil {
		if verbose {
			log.Printf("[VERBOSE] Browser fallback failed, keeping HTTP text: %v", err)
		}
		return text, platform, nil
	}
	rendered, err := MainText(html, platform)
	if err != nil {
		return text, platform, nil
	}
	return rendered, platform, nil
}
