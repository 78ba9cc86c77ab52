package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentStructuredResume(t *testing.T) {
	text := strings.Join([]string{
		"[PERSON]",
		"Senior backend engineer.",
		"",
		"Skills:",
		"Go, PostgreSQL; Docker | Kubernetes",
		"Go", // duplicate, different line
		"Experience",
		"Built payment services at [ORG].",
		"Led a team of four.",
		"Education",
		"B.Sc. Computer Science, [ORG]",
	}, "\n")

	p := Segment(text, DefaultSectionConfig())

	assert.Equal(t, []string{"go", "postgresql", "docker", "kubernetes"}, p.Skills)
	assert.Equal(t, "[PERSON]\nSenior backend engineer.\nBuilt payment services at [ORG].\nLed a team of four.", p.Experience)
	assert.Equal(t, "B.Sc. Computer Science, [ORG]", p.Education)
}

func TestSegmentHeaderlessDocument(t *testing.T) {
	text := "Just a paragraph about building software.\nNothing resembling a section title."

	p := Segment(text, DefaultSectionConfig())

	assert.Empty(t, p.Skills)
	assert.Equal(t, text, p.Experience)
	assert.Empty(t, p.Education)
}

func TestSegmentEmptyDocument(t *testing.T) {
	p := Segment("", DefaultSectionConfig())

	assert.Empty(t, p.Skills)
	assert.Empty(t, p.Experience)
	assert.Empty(t, p.Education)
}

func TestSegmentPreambleReadsAsExperience(t *testing.T) {
	text := "Ten years of shipping distributed systems.\nSkills\npython, sql"

	p := Segment(text, DefaultSectionConfig())

	assert.Equal(t, []string{"python", "sql"}, p.Skills)
	assert.Equal(t, "Ten years of shipping distributed systems.", p.Experience)
}

func TestSegmentHeaderVariants(t *testing.T) {
	text := "TECHNICAL SKILLS:\nrust\nWork Experience\nwrote compilers"

	p := Segment(text, DefaultSectionConfig())

	assert.Equal(t, []string{"rust"}, p.Skills)
	assert.Equal(t, "wrote compilers", p.Experience)
}

func TestNewProfileNormalization(t *testing.T) {
	p := NewProfile([]string{" Go ", "go", "SQL", "[ORG]", ""}, " exp ", "")

	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	assert.Equal(t, "exp", p.Experience)
}
