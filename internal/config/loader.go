package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// envBindings maps config keys to the environment variables that override
// them. The NEO4J_* names match what the data-loading tooling already uses.
var envBindings = map[string]string{
	"neo4j.uri":             "NEO4J_URI",
	"neo4j.username":        "NEO4J_USER",
	"neo4j.password":        "NEO4J_PASSWORD",
	"neo4j.database":        "NEO4J_DATABASE",
	"server.listen_address": "OFFSHORELEAKS_LISTEN_ADDRESS",
	"server.debug":          "OFFSHORELEAKS_DEBUG",
	"logging.level":         "OFFSHORELEAKS_LOG_LEVEL",
	"logging.format":        "OFFSHORELEAKS_LOG_FORMAT",
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads configuration from the given YAML file, applies ${VAR}
// interpolation and environment overrides on top of the defaults, and
// validates the result. An empty path skips the file and uses defaults plus
// environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
				"failed to bind environment variable "+env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
				"failed to read config file "+path, err)
		}
	}

	for _, key := range v.AllKeys() {
		if value, ok := v.Get(key).(string); ok {
			v.Set(key, interpolateString(value))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_PARSE_FAILED,
			"failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWithDefaults behaves like Load but tolerates a missing file.
func LoadWithDefaults(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			path = ""
		}
	}
	return Load(path)
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("neo4j.uri", defaults.Neo4j.URI)
	v.SetDefault("neo4j.username", defaults.Neo4j.Username)
	v.SetDefault("neo4j.database", defaults.Neo4j.Database)
	v.SetDefault("neo4j.max_connection_pool_size", defaults.Neo4j.MaxConnectionPoolSize)
	v.SetDefault("neo4j.connection_timeout", defaults.Neo4j.ConnectionTimeout.String())
	v.SetDefault("server.name", defaults.Server.Name)
	v.SetDefault("server.listen_address", defaults.Server.ListenAddress)
	v.SetDefault("server.debug", defaults.Server.Debug)
	v.SetDefault("server.default_limit", defaults.Server.DefaultLimit)
	v.SetDefault("server.max_limit", defaults.Server.MaxLimit)
	v.SetDefault("server.query_timeout", defaults.Server.QueryTimeout.String())
	v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout.String())
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
// Unset variables interpolate to the empty string.
func interpolateString(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(name)
	})
}
