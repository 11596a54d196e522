package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1", PlatformWorkday},
		{"https://example.com/careers/1", PlatformUnknown},
		{"https://notgreenhouse.io/jobs", PlatformUnknown},
		{"::not a url::", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		assert.NotEmpty(t, ContentSelectors(p), "platform %s", p)
	}
	assert.Contains(t, ContentSelectors(PlatformUnknown), ".job-description")
}

func TestNoiseSelectors_IncludeCommon(t *testing.T) {
	for _, p := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		assert.Contains(t, NoiseSelectors(p), "form", "platform %s", p)
	}
	assert.Contains(t, NoiseSelectors(PlatformLever), ".posting-apply")
}
