package models

// StratConfig is one strategy's tunables. Each concrete variant reports the
// discriminator it is registered under in the codec.
type StratConfig interface {
	Discriminator() string
}

// MMConfigType is the discriminator of the market-maker strategy.
const MMConfigType = "mmConfig"

// MMConfig configures the market-maker strategy.
type MMConfig struct {
	Activated    bool `json:"activated"`
	WaitDuration int  `json:"waitDuration"` // seconds
	MaxOfferTime int  `json:"maxOfferTime"`
}

func (MMConfig) Discriminator() string { return MMConfigType }

type MTopLevelConfig struct {
	MinGp int `json:"minGp"`
}

// MLiveConfig is encoded by the codec package, never directly: the strat list
// needs its discriminator.
type MLiveConfig struct {
	AutotraderOn   bool            `json:"autotraderOn"`
	TopLevelConfig MTopLevelConfig `json:"topLevelConfig"`
	StratConfigs   []StratConfig   `json:"-"`
}
