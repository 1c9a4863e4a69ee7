package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingConfig is returned by Load when a required key has no value.
var ErrMissingConfig = errors.New("missing required configuration")

// Store backends.
const (
	BackendPostgres = "postgres"
	BackendREST     = "rest"
)

// Config contains runtime configuration required by the service.
// It is loaded once at start-up and never mutated afterwards.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	LineChannelSecret      string
	LineChannelAccessToken string
	LineAPIBase            string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	// SystemPrompt is empty when neither SYSTEM_PROMPT nor SYSTEM_PROMPT_FILE
	// is set; the assistant then uses its built-in instruction.
	SystemPrompt string

	StoreBackend     string
	DBURL            string
	SupabaseURL      string
	SupabaseKey      string
	InventoryTable   string
	InventoryMaxRows int
	// DBAutoMigrate creates the inventory table on start-up when missing.
	DBAutoMigrate bool

	// UpstreamTimeout bounds each completion, lookup and reply call. Zero
	// leaves calls bounded only by the inbound request lifetime.
	UpstreamTimeout time.Duration
}

// Load reads configuration from defaults, an optional config file, a .env
// file and the process environment (highest precedence).
func Load() (Config, error) {
	// .env never overrides variables that are already set.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := Config{
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),

		LineChannelSecret:      strings.TrimSpace(v.GetString("line_channel_secret")),
		LineChannelAccessToken: strings.TrimSpace(v.GetString("line_channel_access_token")),
		LineAPIBase:            strings.TrimRight(v.GetString("line_api_base"), "/"),

		OpenAIAPIKey:  strings.TrimSpace(v.GetString("openai_api_key")),
		OpenAIBaseURL: strings.TrimSpace(v.GetString("openai_base_url")),
		OpenAIModel:   v.GetString("openai_model"),

		StoreBackend:     strings.ToLower(strings.TrimSpace(v.GetString("store_backend"))),
		DBURL:            strings.TrimSpace(v.GetString("db_url")),
		SupabaseURL:      strings.TrimRight(strings.TrimSpace(v.GetString("supabase_url")), "/"),
		SupabaseKey:      strings.TrimSpace(v.GetString("supabase_service_role_key")),
		InventoryTable:   v.GetString("inventory_table"),
		InventoryMaxRows: v.GetInt("inventory_max_rows"),
		DBAutoMigrate:    v.GetBool("db_auto_migrate"),

		UpstreamTimeout: v.GetDuration("upstream_timeout"),
	}

	prompt, err := loadSystemPrompt(v)
	if err != nil {
		return Config{}, err
	}
	cfg.SystemPrompt = prompt

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("line_api_base", "https://api.line.me")
	v.SetDefault("openai_model", "gpt-4")
	v.SetDefault("store_backend", BackendPostgres)
	v.SetDefault("inventory_table", "cars")
	v.SetDefault("inventory_max_rows", 50)
	v.SetDefault("db_auto_migrate", false)
	v.SetDefault("upstream_timeout", "0s")

	// Keys without defaults still need to be known to viper so that
	// AutomaticEnv resolves them through Get*.
	for _, key := range []string{
		"line_channel_secret", "line_channel_access_token",
		"openai_api_key", "openai_base_url",
		"system_prompt", "system_prompt_file",
		"db_url", "supabase_url", "supabase_service_role_key",
	} {
		v.SetDefault(key, "")
	}
}

// loadSystemPrompt prefers an inline SYSTEM_PROMPT over SYSTEM_PROMPT_FILE.
func loadSystemPrompt(v *viper.Viper) (string, error) {
	if p := strings.TrimSpace(v.GetString("system_prompt")); p != "" {
		return p, nil
	}
	path := strings.TrimSpace(v.GetString("system_prompt_file"))
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read system prompt file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (c Config) validate() error {
	required := map[string]string{
		"LINE_CHANNEL_SECRET":       c.LineChannelSecret,
		"LINE_CHANNEL_ACCESS_TOKEN": c.LineChannelAccessToken,
		"OPENAI_API_KEY":            c.OpenAIAPIKey,
	}

	switch c.StoreBackend {
	case BackendPostgres:
		required["DB_URL"] = c.DBURL
	case BackendREST:
		required["SUPABASE_URL"] = c.SupabaseURL
		required["SUPABASE_SERVICE_ROLE_KEY"] = c.SupabaseKey
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendPostgres, BackendREST, c.StoreBackend)
	}

	var missing []string
	for key, val := range required {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	if c.InventoryMaxRows <= 0 {
		return errors.New("INVENTORY_MAX_ROWS must be positive")
	}
	if strings.TrimSpace(c.InventoryTable) == "" {
		return errors.New("INVENTORY_TABLE must not be empty")
	}
	return nil
}
