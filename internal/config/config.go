package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	Debug       bool
	LogJSON     bool

	// Embedding configuration
	EmbeddingProvider string // "openai" or "fastembed"
	EmbeddingModel    string // "text-embedding-3-small", "BAAI/bge-small-en-v1.5", ...
	EmbeddingAPIKey   string
	EmbeddingBaseURL  string // OpenAI-compatible endpoint
	EmbeddingCacheDir string // fastembed model cache

	// NER configuration
	NERProvider string // "openai", "groq", or "none"
	NERModel    string
	NERAPIKey   string

	// Matching configuration
	SimilarityThreshold float64

	// Segmentation header cues. Comma-separated overrides; defaults cover the
	// common resume section titles.
	SkillsHeaders     []string
	ExperienceHeaders []string
	EducationHeaders  []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	embeddingAPIKey := os.Getenv("EMBEDDING_API_KEY")
	if embeddingAPIKey == "" {
		embeddingAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	nerProvider := getEnv("NER_PROVIDER", "openai")
	nerAPIKey := ""
	switch nerProvider {
	case "openai":
		nerAPIKey = os.Getenv("OPENAI_API_KEY")
	case "groq":
		nerAPIKey = os.Getenv("GROQ_API_KEY")
	}

	return &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        getEnv("PORT", "8080"),
		Debug:       os.Getenv("DEBUG") == "true",
		LogJSON:     os.Getenv("LOG_JSON") == "true",

		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingAPIKey:   embeddingAPIKey,
		EmbeddingBaseURL:  getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingCacheDir: getEnv("EMBEDDING_CACHE_DIR", "./models"),

		NERProvider: nerProvider,
		NERModel:    getEnv("NER_MODEL", "gpt-4o-mini"),
		NERAPIKey:   nerAPIKey,

		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.5),

		SkillsHeaders:     getEnvList("SECTION_HEADERS_SKILLS", []string{"skills", "technical skills", "competencies", "expertise"}),
		ExperienceHeaders: getEnvList("SECTION_HEADERS_EXPERIENCE", []string{"experience", "work experience", "employment", "professional experience"}),
		EducationHeaders:  getEnvList("SECTION_HEADERS_EDUCATION", []string{"education", "academic background", "qualification"}),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %.2f", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
