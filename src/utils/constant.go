package utils

// -----------------------------------------------------------------------------

// Sizes of the host client's fixed containers.
const (
	MaxExchangeSlots    = 8
	MaxF2pExchangeSlots = 3
	MaxInventorySlots   = 28
)

// -----------------------------------------------------------------------------

// Server defaults, applied when the config file leaves a value unset.
const (
	DefaultPort                       = 19100
	DefaultGrpcPort                   = 19101
	DefaultHost                       = "127.0.0.1"
	DefaultRequestTimeoutMs           = 5000
	DefaultHealthProbeIntervalSeconds = 10
	DefaultSQLitePath                 = "gamedata.db"
	DefaultPostgresSchema             = "gamedata"
)

// -----------------------------------------------------------------------------

// Live config defaults, matching the plugin settings the automation process
// was written against.
const (
	DefaultMMActivated    = true
	DefaultMMWaitDuration = 30 // seconds
	DefaultMaxOfferTime   = 60 // minutes
)
