package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"game-data-server/src/interfaces"
	"game-data-server/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ interfaces.IGameStateSource = (*StaticSource)(nil)
	_ interfaces.IGameStateSource = (*FileSource)(nil)
	_ interfaces.IRefreshable     = (*FileSource)(nil)
)

const fixture = `
game_state: LOGGED_IN
members: true
camera: {z: -400, yaw: 1024, scale: 512}
player:
  name: Zezima
  location: {x: 3164, y: 3487, plane: 0}
offers:
  - {item_id: 554, price: 120, quantity_sold: 10, total_quantity: 50, state: BUYING}
  - {state: EMPTY}
inventory:
  items:
    - {id: 995, quantity: 1000}
    - null
    - {id: 554, quantity: 25}
chat:
  PUBLICCHAT:
    lines:
      - {value: hello, name: bob, timestamp: 1700000000}
`

func writeFixture(t *testing.T, dir, body string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestFileSourceReadsFixture(t *testing.T) {
	path := writeFixture(t, t.TempDir(), fixture, time.Unix(1700000000, 0))
	src := NewFileSource(path, nil)

	state, err := src.GameState()
	require.NoError(t, err)
	assert.Equal(t, models.GameStateLoggedIn, state)

	offers, err := src.GrandExchangeOffers()
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, models.RawOffer{ItemID: 554, Price: 120, QuantitySold: 10, TotalQuantity: 50, State: models.OfferBuying}, *offers[0])

	inv, err := src.ItemContainer(models.ContainerInventory)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Nil(t, inv.Item(1))
	assert.Equal(t, 25, inv.Item(2).Quantity)
	assert.Nil(t, inv.Item(27))

	other, err := src.ItemContainer(models.RawContainerID(94))
	require.NoError(t, err)
	assert.Nil(t, other)

	player, err := src.LocalPlayer()
	require.NoError(t, err)
	assert.Equal(t, "Zezima", player.Name)
	assert.Equal(t, 3164, player.WorldLocation.X)

	cam, err := src.Camera()
	require.NoError(t, err)
	assert.Equal(t, models.RawCamera{Z: -400, Yaw: 1024, Scale: 512}, cam)

	chat, err := src.ChatLineBuffer(models.ChatPublic)
	require.NoError(t, err)
	require.Len(t, chat.Lines, 1)
	assert.Equal(t, "bob", chat.Lines[0].Name)

	members, err := src.IsMembersWorld()
	require.NoError(t, err)
	assert.True(t, members)
}

func TestFileSourceReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "game_state: LOGIN_SCREEN\n", time.Unix(1700000000, 0))
	src := NewFileSource(path, nil)

	state, err := src.GameState()
	require.NoError(t, err)
	assert.Equal(t, models.GameStateLoginScreen, state)

	writeFixture(t, dir, "game_state: LOGGED_IN\n", time.Unix(1700000100, 0))

	state, err = src.GameState()
	require.NoError(t, err)
	assert.Equal(t, models.GameStateLoginScreen, state, "change is only seen after Refresh")

	src.Refresh()
	state, err = src.GameState()
	require.NoError(t, err)
	assert.Equal(t, models.GameStateLoggedIn, state)
}

func TestFileSourceStableBetweenRefreshes(t *testing.T) {
	dir := t.TempDir()
	before := "offers:\n  - {item_id: 1, price: 5, total_quantity: 1, state: BUYING}\ninventory:\n  items:\n    - {id: 1, quantity: 1}\nplayer:\n  name: A\n  location: {x: 1, y: 1, plane: 0}\n"
	after := "offers:\n  - {item_id: 2, price: 5, total_quantity: 1, state: BUYING}\ninventory:\n  items:\n    - {id: 2, quantity: 1}\nplayer:\n  name: A\n  location: {x: 2, y: 2, plane: 0}\n"
	path := writeFixture(t, dir, before, time.Unix(1700000000, 0))
	src := NewFileSource(path, nil)
	src.Refresh()

	offers, err := src.GrandExchangeOffers()
	require.NoError(t, err)
	assert.Equal(t, 1, offers[0].ItemID)

	writeFixture(t, dir, after, time.Unix(1700000100, 0))

	inv, err := src.ItemContainer(models.ContainerInventory)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Item(0).ID)
	player, err := src.LocalPlayer()
	require.NoError(t, err)
	assert.Equal(t, 1, player.WorldLocation.X)

	src.Refresh()
	offers, err = src.GrandExchangeOffers()
	require.NoError(t, err)
	assert.Equal(t, 2, offers[0].ItemID)
	inv, err = src.ItemContainer(models.ContainerInventory)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Item(0).ID)
}

func TestFileSourceRefreshAfterRemoval(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "game_state: LOGGED_IN\n", time.Unix(1700000000, 0))
	src := NewFileSource(path, nil)
	src.Refresh()

	require.NoError(t, os.Remove(path))
	_, err := src.GameState()
	require.NoError(t, err)

	src.Refresh()
	_, err = src.GameState()
	assert.ErrorIs(t, err, ErrUnreachable)

	writeFixture(t, dir, "game_state: LOGIN_SCREEN\n", time.Unix(1700000000, 0))
	src.Refresh()
	state, err := src.GameState()
	require.NoError(t, err)
	assert.Equal(t, models.GameStateLoginScreen, state)
}

func TestFileSourceUnreachable(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.yaml"), nil)

	_, err := src.GameState()
	assert.ErrorIs(t, err, ErrUnreachable)

	path := writeFixture(t, t.TempDir(), "unreachable: true\n", time.Unix(1700000000, 0))
	_, err = NewFileSource(path, nil).GrandExchangeOffers()
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestStaticSourceUnreachable(t *testing.T) {
	src := &StaticSource{Unreachable: true}

	_, err := src.Camera()
	assert.ErrorIs(t, err, ErrUnreachable)
	_, err = src.ChatLineBuffer(models.ChatPublic)
	assert.ErrorIs(t, err, ErrUnreachable)
	_, err = src.IsMembersWorld()
	assert.ErrorIs(t, err, ErrUnreachable)
}
