package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/adapters/gateway"
	router "github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/adapters/http"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/app"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/config"
	"github.com/ronb12/kaden-adelynn-space-adventures-sub003/internal/domain"
)

type routerFixture struct {
	engine   *gin.Engine
	registry *app.Registry
	store    *app.SnapshotStore
	snapPath string
}

func testRouter(t *testing.T) routerFixture {
	t.Helper()
	cfg := &config.Config{
		Mode:           "release",
		Secret:         "test-secret",
		ChatRateLimit:  10,
		ChatRateWindow: time.Second,
	}
	reg := app.NewRegistry()
	snapPath := filepath.Join(t.TempDir(), "game_data.json")
	store := app.NewSnapshotStore(reg, snapPath, time.Minute)
	ctl := gateway.NewController(cfg, reg)
	engine := router.SetupRouter(context.Background(), cfg, reg, store, ctl)
	return routerFixture{engine: engine, registry: reg, store: store, snapPath: snapPath}
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(w.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestHealthz(t *testing.T) {
	fx := testRouter(t)
	w, body := doJSON(t, fx.engine, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateRoomDefaults(t *testing.T) {
	fx := testRouter(t)
	w, body := doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `{"name":"Arena"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Arena", body["name"])
	assert.Equal(t, float64(4), body["maxPlayers"])
	assert.Equal(t, "cooperative", body["gameMode"])
	assert.Equal(t, false, body["isActive"])
}

func TestCreateRoomValidation(t *testing.T) {
	fx := testRouter(t)

	w, body := doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `{"name":"Arena","maxPlayers":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["error"])

	w, body = doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `{"maxPlayers":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["error"])

	w, _ = doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRooms(t *testing.T) {
	fx := testRouter(t)
	_, created := doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `{"name":"Arena","maxPlayers":2}`)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	w := httptest.NewRecorder()
	fx.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
	require.Len(t, rooms, 1)
	assert.Equal(t, created["id"], rooms[0]["id"])
	assert.Equal(t, float64(0), rooms[0]["players"])
	assert.Equal(t, float64(2), rooms[0]["maxPlayers"])
}

func TestGetRoomDetail(t *testing.T) {
	fx := testRouter(t)
	_, created := doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `{"name":"Arena","maxPlayers":2}`)
	roomID := created["id"].(string)

	_, err := fx.registry.AttachMember(domain.RoomID(roomID), "p1", "Alice")
	require.NoError(t, err)

	w, body := doJSON(t, fx.engine, http.MethodGet, "/api/rooms/"+roomID, "")
	require.Equal(t, http.StatusOK, w.Code)
	room := body["room"].(map[string]any)
	assert.Equal(t, roomID, room["id"])
	assert.Equal(t, true, room["isActive"])
	assert.Len(t, body["members"].([]any), 1)

	w, body = doJSON(t, fx.engine, http.MethodGet, "/api/rooms/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Room not found", body["error"])
}

func TestRegisterPlayer(t *testing.T) {
	fx := testRouter(t)
	w, body := doJSON(t, fx.engine, http.MethodPost, "/api/players", `{"name":"Kaden","avatar":"ship-blue"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Kaden", body["name"])
	assert.Equal(t, float64(1), body["level"])
	assert.Equal(t, float64(0), body["experience"])
	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["gamesPlayed"])
	assert.Equal(t, float64(0), stats["wins"])

	w, body = doJSON(t, fx.engine, http.MethodPost, "/api/players", `{"avatar":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, body["error"])
}

func TestGetPlayerNotFound(t *testing.T) {
	fx := testRouter(t)
	w, body := doJSON(t, fx.engine, http.MethodGet, "/api/players/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Player not found", body["error"])
}

func TestGetPlayerRoundTrip(t *testing.T) {
	fx := testRouter(t)
	_, created := doJSON(t, fx.engine, http.MethodPost, "/api/players", `{"name":"Adelynn","avatar":"ship-gold"}`)
	id := created["id"].(string)

	w, body := doJSON(t, fx.engine, http.MethodGet, "/api/players/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Adelynn", body["name"])
	assert.Equal(t, "ship-gold", body["avatar"])
}

func TestMutationsWriteThrough(t *testing.T) {
	fx := testRouter(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		fx.store.Run(ctx)
	}()

	_, created := doJSON(t, fx.engine, http.MethodPost, "/api/rooms", `{"name":"Arena"}`)
	require.NotEmpty(t, created["id"])

	// The structural change reaches disk without waiting for the periodic
	// tick.
	require.Eventually(t, func() bool {
		_, err := os.Stat(fx.snapPath)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
