package models

// MConfig Structure
type MConfig struct {
	Name                       string          `yaml:"name"`
	Host                       string          `yaml:"host"`
	Port                       int             `yaml:"port"`
	LogLevel                   string          `yaml:"log_level"`
	GrpcHost                   string          `yaml:"grpc_host"`
	GrpcPort                   int             `yaml:"grpc_port"`
	RequestTimeoutMs           int             `yaml:"request_timeout_ms"`
	HealthProbeIntervalSeconds int             `yaml:"health_probe_interval_seconds"`
	Source                     MSourceConfig   `yaml:"source"`
	Storage                    MStorageConfig  `yaml:"storage"`
	Network                    MNetworkConfig  `yaml:"network"`
	LiveConfig                 MLiveConfigSeed `yaml:"live_config"`
}

type MSourceConfig struct {
	Type string `yaml:"type"` // "file" or "static"
	Path string `yaml:"path"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"` // "sqlite", "postgres" or "memory"
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	Schema             string `yaml:"schema"`
}

// MNetworkConfig is used by the client side (probe) only.
type MNetworkConfig struct {
	RequestTimeout int    `yaml:"timeout"`
	MaxRetries     int    `yaml:"retries"`
	UserAgent      string `yaml:"user_agent"`
}

// MLiveConfigSeed is the initial live configuration written to the store on
// first start. Strategies keep their wire shape so they go through the codec.
type MLiveConfigSeed struct {
	AutotraderOn bool             `yaml:"autotrader_on"`
	TopLevel     MTopLevelSeed    `yaml:"top_level"`
	Strategies   []map[string]any `yaml:"strategies"`
}

type MTopLevelSeed struct {
	MinGp int `yaml:"min_gp"`
}

// LoggingLevel lets the logger pick its level from any config wrapper.
func (c *MConfig) LoggingLevel() string {
	return c.LogLevel
}
