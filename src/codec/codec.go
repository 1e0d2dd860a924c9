// Package codec encodes the strategy-config family as a tagged union: every
// variant is written as one JSON object whose "type" field names the variant.
//
// Variants are registered explicitly; adding a strategy is one Register call.
package codec

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"game-data-server/src/helpers"
	"game-data-server/src/models"

	json "github.com/goccy/go-json"
)

// DiscriminatorKey is reserved in every variant's JSON shape.
const DiscriminatorKey = "type"

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

// Variant is one registry entry.
type Variant struct {
	Name   string
	Encode func(models.StratConfig) ([]byte, error)
	Decode func([]byte) (models.StratConfig, error)
}

// Registry maps discriminator strings to variants. It is filled at startup
// and read-only afterwards, so it is safe for concurrent use.
type Registry struct {
	variants map[string]Variant
}

func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]Variant)}
}

// DefaultRegistry knows every strategy the server ships with.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register[models.MMConfig](r, models.MMConfigType)
	return r
}

// -----------------------------------------------------------------------------

// Register adds the value type T under name. It panics on an empty or
// duplicate name, when T reports a different discriminator, or when T's own
// JSON shape already uses the discriminator key.
func Register[T models.StratConfig](r *Registry, name string) {
	if name == "" {
		panic("codec: empty discriminator")
	}
	if _, dup := r.variants[name]; dup {
		panic(fmt.Sprintf("codec: discriminator %q registered twice", name))
	}

	var zero T
	if got := zero.Discriminator(); got != name {
		panic(fmt.Sprintf("codec: %T reports discriminator %q, registered as %q", zero, got, name))
	}
	if usesReservedKey(zero) {
		panic(fmt.Sprintf("codec: %T uses reserved field %q", zero, DiscriminatorKey))
	}

	r.variants[name] = Variant{
		Name: name,
		Encode: func(cfg models.StratConfig) ([]byte, error) {
			if v, ok := cfg.(T); ok {
				return json.Marshal(v)
			}
			// A pointer to the registered type has the same method set.
			if p, ok := any(cfg).(*T); ok {
				return json.Marshal(*p)
			}
			return nil, fmt.Errorf("strategy config %T is not the type registered as %q", cfg, name)
		},
		Decode: func(data []byte) (models.StratConfig, error) {
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", name, err)
			}
			return v, nil
		},
	}
}

func usesReservedKey(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return false
	}
	_, ok := fields[DiscriminatorKey]
	return ok
}

// Names lists the registered discriminators in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.variants))
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------
// Strategy configs
// -----------------------------------------------------------------------------

// EncodeStratConfig writes cfg as a JSON object with the discriminator first.
func (r *Registry) EncodeStratConfig(cfg models.StratConfig) ([]byte, error) {
	if cfg == nil {
		return nil, fmt.Errorf("encode strategy config: nil value")
	}
	if rv := reflect.ValueOf(cfg); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("encode strategy config: nil %T", cfg)
	}

	name := cfg.Discriminator()
	variant, ok := r.variants[name]
	if !ok {
		return nil, helpers.NewUnknownVariant(name)
	}

	body, err := variant.Encode(cfg)
	if err != nil {
		return nil, err
	}
	return withDiscriminator(name, body)
}

func withDiscriminator(name string, body []byte) ([]byte, error) {
	body = bytes.TrimSpace(body)
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("strategy config %q must encode as a JSON object", name)
	}

	tag, err := json.Marshal(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"` + DiscriminatorKey + `":`)
	buf.Write(tag)

	rest := bytes.TrimSpace(body[1:])
	if len(rest) > 0 && rest[0] != '}' {
		buf.WriteByte(',')
	}
	buf.Write(rest)
	return buf.Bytes(), nil
}

// -----------------------------------------------------------------------------

// DecodeStratConfig reads the discriminator first, then decodes the object
// into the registered type.
func (r *Registry) DecodeStratConfig(data []byte) (models.StratConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode strategy config: %w", err)
	}

	raw, ok := fields[DiscriminatorKey]
	if !ok {
		return nil, helpers.NewMissingDiscriminator(DiscriminatorKey)
	}

	var name string
	if err := json.Unmarshal(raw, &name); err != nil || name == "" {
		return nil, helpers.NewMalformedDiscriminator(DiscriminatorKey, raw)
	}

	variant, ok := r.variants[name]
	if !ok {
		return nil, helpers.NewUnknownVariant(name)
	}
	return variant.Decode(data)
}

// DecodeStratConfigMap decodes a variant given as a generic map, as produced
// by the YAML config loader.
func (r *Registry) DecodeStratConfigMap(m map[string]any) (models.StratConfig, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("decode strategy config: %w", err)
	}
	return r.DecodeStratConfig(data)
}

// -----------------------------------------------------------------------------
// Live config
// -----------------------------------------------------------------------------

type liveConfigWire struct {
	AutotraderOn   bool                   `json:"autotraderOn"`
	TopLevelConfig models.MTopLevelConfig `json:"topLevelConfig"`
	StratConfigs   []json.RawMessage      `json:"stratConfigs"`
}

func (r *Registry) MarshalLiveConfig(cfg models.MLiveConfig) ([]byte, error) {
	strats := make([]json.RawMessage, 0, len(cfg.StratConfigs))
	for i, sc := range cfg.StratConfigs {
		data, err := r.EncodeStratConfig(sc)
		if err != nil {
			return nil, fmt.Errorf("stratConfigs[%d]: %w", i, err)
		}
		strats = append(strats, data)
	}

	return json.Marshal(liveConfigWire{
		AutotraderOn:   cfg.AutotraderOn,
		TopLevelConfig: cfg.TopLevelConfig,
		StratConfigs:   strats,
	})
}

func (r *Registry) UnmarshalLiveConfig(data []byte) (models.MLiveConfig, error) {
	var wire liveConfigWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return models.MLiveConfig{}, fmt.Errorf("decode live config: %w", err)
	}

	cfg := models.MLiveConfig{
		AutotraderOn:   wire.AutotraderOn,
		TopLevelConfig: wire.TopLevelConfig,
		StratConfigs:   make([]models.StratConfig, 0, len(wire.StratConfigs)),
	}
	for i, raw := range wire.StratConfigs {
		sc, err := r.DecodeStratConfig(raw)
		if err != nil {
			return models.MLiveConfig{}, fmt.Errorf("stratConfigs[%d]: %w", i, err)
		}
		cfg.StratConfigs = append(cfg.StratConfigs, sc)
	}
	return cfg, nil
}
