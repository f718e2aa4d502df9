package config

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int       `yaml:"port"`
	DSN            string    `yaml:"dsn"` // MySQL DSN
	RedisURL       string    `yaml:"redis_url"`
	Env            string    `yaml:"env"` // "development" | "production"
	JWTSecret      string    `yaml:"jwt_secret"`
	AllowedOrigins []string  `yaml:"allowed_origins"`
	Storage        S3Options `yaml:"storage"`
	AI             AIConfig  `yaml:"ai"`
	Limits         Limits    `yaml:"limits"`
}

// S3Options configures transcript file storage.
type S3Options struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// AIConfig selects between the deterministic mock pipeline and real providers.
type AIConfig struct {
	UseMock             bool              `yaml:"use_mock"`
	Providers           []AIProvider      `yaml:"providers"`
	ExtractionModel     *ModelAssignment  `yaml:"extraction_model"`
	AnswerModel         *ModelAssignment  `yaml:"answer_model"`
	EmbeddingModel      string            `yaml:"embedding_model"`
	EmbeddingDimensions int               `yaml:"embedding_dimensions"`
	RequestTimeoutSec   int               `yaml:"request_timeout_sec"`
}

// AIProvider describes one configured generative-model backend.
type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

// ModelAssignment pins a task to a provider/model pair.
type ModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

// Limits holds per-plan monthly quotas enforced by the usage module.
type Limits struct {
	FreeInterviewsPerMonth int `yaml:"free_interviews_per_month"`
	FreeQueriesPerMonth    int `yaml:"free_queries_per_month"`
}
