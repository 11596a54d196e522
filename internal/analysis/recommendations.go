package analysis

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scanner/internal/skills"
)

// CertificationReminder is emitted when the resume has no certifications section.
const CertificationReminder = "Add relevant certifications if you have them."

// Recommendations builds the advice list in fixed order: missing skills, weak
// skills, then the certification reminder. Each entry is omitted when its
// condition does not hold.
func Recommendations(missing, weak skills.Set, certifications string) []string {
	recs := []string{}
	if len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("Consider adding or emphasizing these skills: %s.", strings.Join(missing, ", ")))
	}
	if len(weak) > 0 {
		recs = append(recs, fmt.Sprintf("Highlight these skills more: %s.", strings.Join(weak, ", ")))
	}
	if certifications == "" {
		recs = append(recs, CertificationReminder)
	}
	return recs
}
