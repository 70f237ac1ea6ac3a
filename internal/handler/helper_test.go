package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"gamerate/backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTest builds a router over a fresh file-backed database in a temp dir.
func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router, db)
	return router, db
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// validGame returns a minimal valid creation payload.
func validGame(name string) map[string]any {
	return map[string]any{
		"name":               name,
		"art_rating":         8.5,
		"music_rating":       9.0,
		"story_rating":       7.5,
		"playability_rating": 8.0,
		"innovation_rating":  6.5,
		"performance_rating": 9.5,
	}
}

func createGame(t *testing.T, router *gin.Engine, game map[string]any) int {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/games", game)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return int(body["game_id"].(float64))
}

func fetchGame(t *testing.T, router *gin.Engine, id int) GameResponse {
	t.Helper()
	w := doRequest(t, router, http.MethodGet, gamePath(id), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var got GameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func gamePath(id int) string {
	return "/games/" + strconv.Itoa(id)
}
