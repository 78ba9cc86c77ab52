// Package profile holds the anonymized candidate profile and the heuristic
// segmentation that produces it from redacted resume text.
package profile

import (
	"regexp"
	"strings"
)

// CandidateProfile is the persisted outcome of one pipeline run: a
// case-normalized, deduplicated skill list plus free-text experience and
// education narratives. Build it with NewProfile; it is not mutated after
// creation.
type CandidateProfile struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

var placeholderToken = regexp.MustCompile(`^\[[A-Z]+\]$`)

// NewProfile normalizes the skill list (trimmed, lower-cased, first-seen
// dedupe) and drops bare placeholder tokens so redaction artifacts never
// enter the scoring vocabulary.
func NewProfile(skills []string, experience, education string) *CandidateProfile {
	p := &CandidateProfile{
		Experience: strings.TrimSpace(experience),
		Education:  strings.TrimSpace(education),
	}

	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || placeholderToken.MatchString(s) {
			continue
		}
		s = strings.ToLower(s)
		if seen[s] {
			continue
		}
		seen[s] = true
		p.Skills = append(p.Skills, s)
	}
	return p
}
