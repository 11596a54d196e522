package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a URL's host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// ContentSelectors returns the selectors tried, in order, to locate the posting body.
func ContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{".job__description.body", ".job__description", "#content", ".job-post-container"}
	case PlatformLever:
		return []string{".posting-page", ".posting-description", ".content"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobDescription']", ".job-description"}
	default:
		return []string{
			".job-description",
			"#job-description",
			".job-details",
			".posting-content",
			"[data-testid='job-description']",
			"main",
			"article",
			"#content",
		}
	}
}

// NoiseSelectors returns elements removed before text extraction: application
// forms, equal-opportunity boilerplate and share widgets.
func NoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		".application-form",
		"#application-form",
		".eeo-statement",
		".voluntary-disclosure",
		".social-share",
		".cookie-consent",
	}
	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
