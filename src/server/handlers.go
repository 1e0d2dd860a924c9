package server

import (
	"net/http"

	"game-data-server/src/executor"
	"game-data-server/src/interfaces"
	"game-data-server/src/mapping"
	"game-data-server/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

// fromGame runs fn on the game thread and writes its result. Every game state
// endpoint goes through here.
func fromGame[T any](s *GameDataServer, c *gin.Context, fn func(interfaces.IGameStateSource) (T, error)) {
	v, err := executor.Invoke(c.Request.Context(), s.Thread, fn)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// -----------------------------------------------------------------------------

func (s *GameDataServer) getHealth(c *gin.Context) {
	fromGame(s, c, mapping.CheckHealth)
}

func (s *GameDataServer) getSnapshot(c *gin.Context) {
	fromGame(s, c, s.assembler.Assemble)
}

func (s *GameDataServer) getExchange(c *gin.Context) {
	fromGame(s, c, mapping.MapExchange)
}

func (s *GameDataServer) getInventory(c *gin.Context) {
	fromGame(s, c, mapping.MapInventory)
}

func (s *GameDataServer) getPlayer(c *gin.Context) {
	fromGame(s, c, mapping.MapPlayer)
}

func (s *GameDataServer) getChat(c *gin.Context) {
	fromGame(s, c, mapping.MapChatBox)
}

// -----------------------------------------------------------------------------

func (s *GameDataServer) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, s.Session)
}

func (s *GameDataServer) getMembership(c *gin.Context) {
	c.JSON(http.StatusOK, models.MMembership{IsF2p: s.Session.IsF2p})
}

// -----------------------------------------------------------------------------

// getConfig re-reads the store on every poll so edits show up without a
// restart. The strat list only has a wire shape through the codec.
func (s *GameDataServer) getConfig(c *gin.Context) {
	cfg, err := s.Store.LoadLiveConfig(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	data, err := s.Registry.MarshalLiveConfig(cfg)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
