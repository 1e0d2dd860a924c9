// Package client is the consumer side of the game data API: typed getters
// for every endpoint, with the server's structured errors turned back into
// *helpers.GameDataError.
package client

import (
	"errors"
	"fmt"
	"strings"

	"game-data-server/src/codec"
	"game-data-server/src/helpers"
	"game-data-server/src/interfaces"
	"game-data-server/src/models"
	"game-data-server/src/network"
	"game-data-server/src/utils"

	"github.com/goccy/go-json"
)

// Endpoints lists every path the server answers, in the order the probe
// prints them.
var Endpoints = []string{
	"/health",
	"/session",
	"/membership",
	"/exchange",
	"/inventory",
	"/player",
	"/chat",
	"/config",
	"/snapshot",
}

// -----------------------------------------------------------------------------

type GdsClient struct {
	BaseURL  string
	Network  interfaces.INetworkManager
	Registry *codec.Registry
}

func NewGdsClient(baseURL string, nm interfaces.INetworkManager, registry *codec.Registry) *GdsClient {
	return &GdsClient{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Network:  nm,
		Registry: registry,
	}
}

// -----------------------------------------------------------------------------

// Raw returns the undecoded body of path.
func (c *GdsClient) Raw(path string) ([]byte, error) {
	body, err := c.Network.Get(c.BaseURL+path, nil)
	if err != nil {
		return nil, decodeError(path, err)
	}
	return body, nil
}

func getJSON[T any](c *GdsClient, path string) (T, error) {
	var v T
	body, err := c.Raw(path)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", path, err)
	}
	return v, nil
}

// decodeError rebuilds the server's error from a non-200 body. Anything else
// is returned as is.
func decodeError(path string, err error) error {
	var statusErr *network.StatusError
	if !errors.As(err, &statusErr) {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	var body models.MErrorResponse
	if json.Unmarshal(statusErr.Body, &body) != nil || body.Error.Code == "" {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	return &helpers.GameDataError{
		Kind:    helpers.ErrorKind(body.Error.Code),
		Message: body.Error.Message,
		Cause:   statusErr,
	}
}

// -----------------------------------------------------------------------------

func (c *GdsClient) Health() (models.MHealth, error) {
	return getJSON[models.MHealth](c, "/health")
}

func (c *GdsClient) Session() (models.MSession, error) {
	return getJSON[models.MSession](c, "/session")
}

func (c *GdsClient) Membership() (models.MMembership, error) {
	return getJSON[models.MMembership](c, "/membership")
}

func (c *GdsClient) Exchange() (models.MExchange, error) {
	return getJSON[models.MExchange](c, "/exchange")
}

func (c *GdsClient) Inventory() (models.MInventory, error) {
	return getJSON[models.MInventory](c, "/inventory")
}

func (c *GdsClient) Player() (models.MPlayer, error) {
	return getJSON[models.MPlayer](c, "/player")
}

func (c *GdsClient) Chat() (models.MChatBox, error) {
	return getJSON[models.MChatBox](c, "/chat")
}

func (c *GdsClient) Snapshot() (models.MSnapshot, error) {
	return getJSON[models.MSnapshot](c, "/snapshot")
}

// -----------------------------------------------------------------------------

// LiveConfig decodes /config through the registry, so strategies come back as
// their concrete types.
func (c *GdsClient) LiveConfig() (models.MLiveConfig, error) {
	body, err := c.Raw("/config")
	if err != nil {
		return models.MLiveConfig{}, err
	}
	return c.Registry.UnmarshalLiveConfig(body)
}

// -----------------------------------------------------------------------------

// UsableExchangeSlots is the number of trade slots the player may use: free
// worlds only open the first three.
func (c *GdsClient) UsableExchangeSlots() (int, error) {
	membership, err := c.Membership()
	if err != nil {
		return 0, err
	}
	if membership.IsF2p {
		return utils.MaxF2pExchangeSlots, nil
	}
	return utils.MaxExchangeSlots, nil
}
