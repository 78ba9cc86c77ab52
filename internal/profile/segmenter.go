package profile

import "strings"

// SectionConfig lists the case-insensitive header cues that delimit resume
// sections. Values come from configuration, not from the segmenter itself.
type SectionConfig struct {
	Skills     []string
	Experience []string
	Education  []string
}

// DefaultSectionConfig covers the common resume section titles.
func DefaultSectionConfig() SectionConfig {
	return SectionConfig{
		Skills:     []string{"skills", "technical skills", "competencies", "expertise"},
		Experience: []string{"experience", "work experience", "employment", "professional experience"},
		Education:  []string{"education", "academic background", "qualification"},
	}
}

type sectionKind int

const (
	sectionNone sectionKind = iota
	sectionSkills
	sectionExperience
	sectionEducation
)

// Segment partitions redacted resume text into a CandidateProfile. Lines
// before the first recognized header, or the whole text when no header is
// found, become the experience narrative; an unstructured document is a
// valid result, not an error.
func Segment(text string, cfg SectionConfig) *CandidateProfile {
	lines := strings.Split(text, "\n")

	buffers := map[sectionKind][]string{}
	current := sectionNone
	sawHeader := false

	for _, line := range lines {
		if kind, ok := headerKind(line, cfg); ok {
			current = kind
			sawHeader = true
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if current == sectionNone {
			// Preamble before any header reads as experience narrative.
			buffers[sectionExperience] = append(buffers[sectionExperience], line)
		} else {
			buffers[current] = append(buffers[current], line)
		}
	}

	if !sawHeader {
		return NewProfile(nil, text, "")
	}

	return NewProfile(
		splitSkills(buffers[sectionSkills]),
		strings.Join(buffers[sectionExperience], "\n"),
		strings.Join(buffers[sectionEducation], "\n"),
	)
}

// headerKind reports whether the line is a section header cue. A header is a
// short line whose normalized form equals one of the configured keywords,
// optionally followed by a colon.
func headerKind(line string, cfg SectionConfig) (sectionKind, bool) {
	normalized := strings.ToLower(strings.TrimSpace(line))
	normalized = strings.TrimSuffix(normalized, ":")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return sectionNone, false
	}

	for _, h := range cfg.Skills {
		if normalized == h {
			return sectionSkills, true
		}
	}
	for _, h := range cfg.Experience {
		if normalized == h {
			return sectionExperience, true
		}
	}
	for _, h := range cfg.Education {
		if normalized == h {
			return sectionEducation, true
		}
	}
	return sectionNone, false
}

// splitSkills breaks skill lines on the common list delimiters. Each line
// already counts as a delimiter boundary on its own.
func splitSkills(lines []string) []string {
	var out []string
	for _, line := range lines {
		out = append(out, strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == '|'
		})...)
	}
	return out
}
