package snapshot

import (
	"testing"
	"time"

	"game-data-server/src/helpers"
	"game-data-server/src/mapping"
	"game-data-server/src/models"
	"game-data-server/src/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSource() *source.StaticSource {
	offers := make([]*models.RawOffer, 8)
	for i := range offers {
		offers[i] = &models.RawOffer{State: models.OfferEmpty}
	}
	offers[0] = &models.RawOffer{ItemID: 554, Price: 5, QuantitySold: 100, TotalQuantity: 100, State: models.OfferBought}

	return &source.StaticSource{
		State:     models.GameStateLoggedIn,
		Offers:    offers,
		Inventory: &models.RawItemContainer{Items: []*models.RawItem{{ID: 995, Quantity: 5000}}},
		View:      models.RawCamera{Z: -300, Yaw: 0, Scale: 600},
		Player:    &models.RawPlayer{Name: "Trader", WorldLocation: &models.RawWorldPoint{X: 3200, Y: 3200}},
	}
}

func fixedAssembler() *Assembler {
	a := NewAssembler(models.MSession{ID: "session-1", StartTime: 1700000000, PlayerName: "Trader"})
	a.Now = func() time.Time { return time.UnixMilli(1700000123456) }
	return a
}

// -----------------------------------------------------------------------------

func TestAssemble(t *testing.T) {
	snap, err := fixedAssembler().Assemble(fullSource())
	require.NoError(t, err)

	assert.Equal(t, "session-1", snap.Session.ID)
	assert.Len(t, snap.Exchange.Slots, 8)
	assert.Equal(t, models.SlotBought, snap.Exchange.Slots[0].State)
	assert.Equal(t, []models.MItem{{ID: 995, Quantity: 5000, InventoryPosition: 0}}, snap.Inventory.Items)
	assert.True(t, snap.Player.LoggedIn)
	assert.Equal(t, models.MLocation{X: 3200, Y: 3200}, snap.Player.Location)
	assert.Equal(t, int64(1700000123456), snap.CreationTime)

	// No chat buffer is not an error.
	require.NotNil(t, snap.ChatBox.Messages)
	assert.Empty(t, snap.ChatBox.Messages)
}

func TestAssembleAbortsOnFirstFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*source.StaticSource)
		want   helpers.ErrorKind
	}{
		{"no exchange", func(s *source.StaticSource) { s.Offers = nil }, helpers.KindSourceUnavailable},
		{"no inventory", func(s *source.StaticSource) { s.Inventory = nil }, helpers.KindSourceUnavailable},
		{"no location", func(s *source.StaticSource) { s.Player.WorldLocation = nil }, helpers.KindNotReady},
		{"bad offer state", func(s *source.StaticSource) { s.Offers[1].State = "???" }, helpers.KindUnmappedState},
		{"client down", func(s *source.StaticSource) { s.Unreachable = true }, helpers.KindSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fullSource()
			tt.mutate(src)

			snap, err := fixedAssembler().Assemble(src)
			require.Error(t, err)
			assert.Equal(t, tt.want, helpers.KindOf(err))
			assert.Equal(t, models.MSnapshot{}, snap)
		})
	}
}

func TestAssembleDefaultClock(t *testing.T) {
	a := &Assembler{}
	before := time.Now().UnixMilli()
	snap, err := a.Assemble(fullSource())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.CreationTime, before)
}

func TestAssembleReturnsMapperErrorUnchanged(t *testing.T) {
	src := fullSource()
	src.Offers = nil

	_, snapErr := fixedAssembler().Assemble(src)
	require.Error(t, snapErr)

	_, exchangeErr := mapping.MapExchange(src)
	require.Error(t, exchangeErr)

	assert.Equal(t, exchangeErr.Error(), snapErr.Error())
}
