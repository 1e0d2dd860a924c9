package config

import (
	"fmt"
	"os"

	"game-data-server/src/codec"
	"game-data-server/src/models"
	"game-data-server/src/utils"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// envOverrides lists the settings that can be changed from the environment
// without editing the YAML file. Unset variables leave the file's value.
type envOverrides struct {
	Host             *string `env:"GDS_HOST"`
	Port             *int    `env:"GDS_PORT"`
	LogLevel         *string `env:"GDS_LOG_LEVEL"`
	GrpcPort         *int    `env:"GDS_GRPC_PORT"`
	RequestTimeoutMs *int    `env:"GDS_REQUEST_TIMEOUT_MS"`
	SourceType       *string `env:"GDS_SOURCE_TYPE"`
	SourcePath       *string `env:"GDS_SOURCE_PATH"`
	DBType           *string `env:"GDS_DB_TYPE"`
	DBPath           *string `env:"GDS_DB_PATH"`
	DBConnection     *string `env:"GDS_DB_CONNECTION_STRING"`
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct. grpc_port is preset because
	// an explicit 0 disables the gRPC server.
	modelConfig := models.MConfig{GrpcPort: utils.DefaultGrpcPort}
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}

	// 3. Environment wins over the file
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

// NewDefaultConfig returns a valid configuration for a local server without
// reading any file.
func NewDefaultConfig() *Config {
	config := &Config{MConfig: &models.MConfig{GrpcPort: utils.DefaultGrpcPort}}
	config.ApplyDefaults()
	return config
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides file values with the GDS_* environment variables.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	setString(&c.Host, o.Host)
	setInt(&c.Port, o.Port)
	setString(&c.LogLevel, o.LogLevel)
	setInt(&c.GrpcPort, o.GrpcPort)
	setInt(&c.RequestTimeoutMs, o.RequestTimeoutMs)
	setString(&c.Source.Type, o.SourceType)
	setString(&c.Source.Path, o.SourcePath)
	setString(&c.Storage.DBType, o.DBType)
	setString(&c.Storage.DBPath, o.DBPath)
	setString(&c.Storage.DBConnectionString, o.DBConnection)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// -----------------------------------------------------------------------------

// ApplyDefaults fills every unset value. A live_config section without
// strategies gets the default market-maker strategy.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "game-data-server"
	}
	if c.Host == "" {
		c.Host = utils.DefaultHost
	}
	if c.Port == 0 {
		c.Port = utils.DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.GrpcHost == "" {
		c.GrpcHost = c.Host
	}
	if c.RequestTimeoutMs == 0 {
		c.RequestTimeoutMs = utils.DefaultRequestTimeoutMs
	}
	if c.HealthProbeIntervalSeconds == 0 {
		c.HealthProbeIntervalSeconds = utils.DefaultHealthProbeIntervalSeconds
	}
	if c.Source.Type == "" {
		c.Source.Type = "static"
	}
	if c.Storage.DBType == "" {
		c.Storage.DBType = "sqlite"
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		c.Storage.DBPath = utils.DefaultSQLitePath
	}
	if c.Storage.DBType == "postgres" && c.Storage.Schema == "" {
		c.Storage.Schema = utils.DefaultPostgresSchema
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = 10
	}
	if c.Network.UserAgent == "" {
		c.Network.UserAgent = "game-data-server-probe/1.0"
	}
	if c.LiveConfig.Strategies == nil {
		c.LiveConfig.Strategies = []map[string]any{{
			codec.DiscriminatorKey: models.MMConfigType,
			"activated":            utils.DefaultMMActivated,
			"waitDuration":         utils.DefaultMMWaitDuration,
			"maxOfferTime":         utils.DefaultMaxOfferTime,
		}}
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort != 0 && (c.GrpcPort <= 1024 || c.GrpcPort > 65535) {
		return fmt.Errorf("invalid grpc port number: %d (must be 0 or between 1025 and 65535)", c.GrpcPort)
	}
	if c.GrpcPort != 0 && c.GrpcPort == c.Port && c.GrpcHost == c.Host {
		return fmt.Errorf("grpc port %d is already used by the http server", c.GrpcPort)
	}
	if c.RequestTimeoutMs <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.HealthProbeIntervalSeconds <= 0 {
		return fmt.Errorf("health probe interval must be greater than 0")
	}

	// Validate Source configuration
	switch c.Source.Type {
	case "static":
	case "file":
		if c.Source.Path == "" {
			return fmt.Errorf("source path cannot be empty for file source")
		}
	default:
		return fmt.Errorf("unknown source type %q (must be file or static)", c.Source.Type)
	}

	// Validate Storage configuration
	switch c.Storage.DBType {
	case "sqlite":
		if c.Storage.DBPath == "" {
			return fmt.Errorf("database path cannot be empty for sqlite")
		}
	case "postgres":
		if c.Storage.DBConnectionString == "" {
			return fmt.Errorf("database connection string cannot be empty for postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database type %q", c.Storage.DBType)
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}

	if c.LiveConfig.TopLevel.MinGp < 0 {
		return fmt.Errorf("live config min_gp cannot be negative")
	}

	return nil
}

// -----------------------------------------------------------------------------

// InitialLiveConfig converts the live_config seed into the model, decoding each
// strategy through the registry.
func (c *Config) InitialLiveConfig(registry *codec.Registry) (models.MLiveConfig, error) {
	seed := c.LiveConfig

	live := models.MLiveConfig{
		AutotraderOn:   seed.AutotraderOn,
		TopLevelConfig: models.MTopLevelConfig{MinGp: seed.TopLevel.MinGp},
		StratConfigs:   make([]models.StratConfig, 0, len(seed.Strategies)),
	}

	for i, raw := range seed.Strategies {
		strat, err := registry.DecodeStratConfigMap(raw)
		if err != nil {
			return models.MLiveConfig{}, fmt.Errorf("live_config strategy %d: %w", i, err)
		}
		live.StratConfigs = append(live.StratConfigs, strat)
	}

	return live, nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
