package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"acroparty/internal/game"
)

func newTestRouter(t *testing.T) (*gin.Engine, *game.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := game.New(nil, nil, nil, nil)
	return New(svc, zap.NewNop()).Router(), svc
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateJoinStartFlow(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/games", map[string]any{
		"nickname": "Ada",
		"settings": map[string]any{"rounds": 3, "max_players": 4},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode(t, rec)
	gameID := int(created["game_id"].(float64))
	hostID := int(created["player_id"].(float64))
	joinCode := created["join_code"].(string)
	require.Len(t, joinCode, 6)

	rec = postJSON(t, router, "/api/games/join", map[string]any{
		"code":     joinCode,
		"nickname": "Bea",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = postJSON(t, router, fmt.Sprintf("/api/games/%d/start", gameID), map[string]any{
		"player_id": hostID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/games/%d", gameID), nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)
	require.Equal(t, http.StatusOK, get.Code)
	snap := decode(t, get)
	require.Equal(t, "playing", snap["status"])
	require.NotNil(t, snap["round"])
}

func TestJoinErrorsMapToStatusCodes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/games", map[string]any{
		"nickname": "Ada",
		"password": "sekrit",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode(t, rec)
	joinCode := created["join_code"].(string)

	rec = postJSON(t, router, "/api/games/join", map[string]any{
		"code":     joinCode,
		"nickname": "Bea",
		"password": "wrong",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(t, router, "/api/games/join", map[string]any{
		"code":     "ZZZZ99",
		"nickname": "Bea",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, router, "/api/games/join", map[string]any{
		"code":     joinCode,
		"nickname": "Ada",
		"password": "sekrit",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestStartRequiresEnoughPlayers(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/games", map[string]any{"nickname": "Ada"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode(t, rec)
	gameID := int(created["game_id"].(float64))
	hostID := int(created["player_id"].(float64))

	rec = postJSON(t, router, fmt.Sprintf("/api/games/%d/start", gameID), map[string]any{
		"player_id": hostID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBadRequestBodies(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postJSON(t, router, "/api/games", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/games/notanumber", nil)
	get := httptest.NewRecorder()
	router.ServeHTTP(get, req)
	require.Equal(t, http.StatusBadRequest, get.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/games/424242", nil)
	get = httptest.NewRecorder()
	router.ServeHTTP(get, req)
	require.Equal(t, http.StatusNotFound, get.Code)
}
