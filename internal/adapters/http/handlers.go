package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/app"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

// directoryHandlers serve the synchronous CRUD surface clients use before
// and alongside the live connection. Mutations write through to the
// snapshot store; reads never touch it.
type directoryHandlers struct {
	registry *app.Registry
	store    *app.SnapshotStore
}

type createRoomRequest struct {
	Name       string          `json:"name"`
	MaxPlayers int             `json:"maxPlayers"`
	GameMode   domain.GameMode `json:"gameMode"`
}

type registerPlayerRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (h *directoryHandlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *directoryHandlers) listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ListRooms())
}

func (h *directoryHandlers) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.MaxPlayers == 0 {
		req.MaxPlayers = domain.DefaultMaxPlayers
	}
	room, err := h.registry.CreateRoom(req.Name, req.MaxPlayers, req.GameMode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.Flush()
	c.JSON(http.StatusOK, room)
}

func (h *directoryHandlers) getRoom(c *gin.Context) {
	id := domain.RoomID(c.Param("id"))
	room, err := h.registry.GetRoom(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room":    room,
		"members": h.registry.MembersOf(id),
	})
}

func (h *directoryHandlers) registerPlayer(c *gin.Context) {
	var req registerPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	player, err := h.registry.RegisterPlayer(req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, domain.ErrNameEmpty) || errors.Is(err, domain.ErrNameTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	h.store.Flush()
	c.JSON(http.StatusOK, player)
}

func (h *directoryHandlers) getPlayer(c *gin.Context) {
	id := domain.PlayerID(c.Param("id"))
	player, err := h.registry.GetPlayer(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
		return
	}
	c.JSON(http.StatusOK, player)
}
