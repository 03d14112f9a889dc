package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMongo  = "mongo"
	BackendStatic = "static"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DataSourceConfig selects and configures the content backend.
// Each setting has exactly one environment key, noted beside it.
type DataSourceConfig struct {
	Backend  string `yaml:"backend"`  // DATA_BACKEND
	MongoURI string `yaml:"mongoUri"` // MONGO_URL
	MongoDB  string `yaml:"mongoDb"`  // MONGO_DB
	DataDir  string `yaml:"dataDir"`  // DATA_DIR
}

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		Mode        string   `yaml:"mode"`
		LogMode     string   `yaml:"logMode"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	DataSource DataSourceConfig `yaml:"dataSource"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	AI struct {
		Provider    string        `yaml:"provider"`
		OpenAIKey   string        `yaml:"openaiApiKey"`
		OpenAIModel string        `yaml:"openaiModel"`
		GeminiKey   string        `yaml:"geminiApiKey"`
		GeminiModel string        `yaml:"geminiModel"`
		Timeout     time.Duration `yaml:"timeout"`
		ChatLimit   int           `yaml:"chatLimit"`
		ChatWindow  time.Duration `yaml:"chatWindow"`
	} `yaml:"ai"`

	TTS struct {
		CacheDir     string `yaml:"cacheDir"`
		AudioDir     string `yaml:"audioDir"`
		GoogleAPIKey string `yaml:"googleApiKey"`
	} `yaml:"tts"`
}

// LoadConfig reads the configuration file, applies environment overrides
// and fills defaults. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	str("GIN_MODE", &c.Server.Mode)
	str("LOG_MODE", &c.Server.LogMode)
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.Server.CORSOrigins = splitList(v)
	}

	str("DATA_BACKEND", &c.DataSource.Backend)
	str("MONGO_URL", &c.DataSource.MongoURI)
	str("MONGO_DB", &c.DataSource.MongoDB)
	str("DATA_DIR", &c.DataSource.DataDir)

	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)

	str("AI_PROVIDER", &c.AI.Provider)
	str("OPENAI_API_KEY", &c.AI.OpenAIKey)
	str("OPENAI_MODEL", &c.AI.OpenAIModel)
	str("GEMINI_API_KEY", &c.AI.GeminiKey)
	str("GEMINI_MODEL", &c.AI.GeminiModel)

	str("GOOGLE_TTS_API_KEY", &c.TTS.GoogleAPIKey)
	str("TTS_CACHE_DIR", &c.TTS.CacheDir)
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Server.LogMode == "" {
		c.Server.LogMode = "development"
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}

	c.DataSource.Backend = strings.ToLower(c.DataSource.Backend)
	if c.DataSource.Backend == "" {
		c.DataSource.Backend = BackendMongo
	}
	if c.DataSource.DataDir == "" {
		c.DataSource.DataDir = "./data"
	}

	c.AI.Provider = strings.ToLower(c.AI.Provider)
	if c.AI.Provider == "" {
		c.AI.Provider = ProviderOpenAI
	}
	if c.AI.OpenAIModel == "" {
		c.AI.OpenAIModel = "gpt-4o-mini"
	}
	if c.AI.GeminiModel == "" {
		c.AI.GeminiModel = "gemini-2.5-flash"
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}
	if c.AI.ChatLimit == 0 {
		c.AI.ChatLimit = 20
	}
	if c.AI.ChatWindow == 0 {
		c.AI.ChatWindow = time.Minute
	}

	if c.TTS.CacheDir == "" {
		c.TTS.CacheDir = c.DataSource.DataDir + "/tts_cache"
	}
}

// Validate reports settings that cannot be served.
func (c *Config) Validate() error {
	switch c.DataSource.Backend {
	case BackendMongo:
		if c.DataSource.MongoURI == "" {
			return errors.New("mongo backend requires MONGO_URL")
		}
	case BackendStatic:
	default:
		return fmt.Errorf("unknown data backend %q", c.DataSource.Backend)
	}

	switch c.AI.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown AI provider %q", c.AI.Provider)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
