package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"holocron/config"
	"holocron/internal/middleware"
	"holocron/internal/testutil"
	"holocron/internal/ws"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Auth:   config.AuthConfig{BcryptCost: 4},
		API:    config.APIConfig{EmptyListNotFound: true},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

type testServer struct {
	db      *gorm.DB
	hub     *ws.Hub
	handler http.Handler
}

func newTestServer(t *testing.T, cfg *config.Config, limiter middleware.Limiter) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	hub := ws.NewHub()
	engine := Setup(cfg, db, limiter, hub)
	return &testServer{db: db, hub: hub, handler: Handler(cfg, engine)}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestFavoritesScenario(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := s.do(t, http.MethodPost, "/user", map[string]string{"email": "luke@rebels.org", "password": "x-wing"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "User created succesfully", body["msg"])
	user := body["user"].(map[string]any)
	assert.NotContains(t, user, "password")
	assert.Equal(t, true, user["is_active"])
	userID := uint(user["id"].(float64))

	planet := testutil.Planet(t, s.db, "Tatooine")
	favPath := fmt.Sprintf("/favorite/planet/%d/%d", userID, planet.ID)

	w = s.do(t, http.MethodPost, favPath, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Planet added to favorites", decode(t, w)["msg"])

	w = s.do(t, http.MethodPost, favPath, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Planet already in favorites", decode(t, w)["msg"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/user/%d/favorites", userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var favs []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favs))
	require.Len(t, favs, 1)
	assert.EqualValues(t, planet.ID, favs[0]["planet_id"])
	assert.EqualValues(t, userID, favs[0]["user_id"])
	assert.Nil(t, favs[0]["character_id"])
	assert.Nil(t, favs[0]["vehicle_id"])

	w = s.do(t, http.MethodDelete, favPath, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Planet removed from favorites", decode(t, w)["msg"])

	w = s.do(t, http.MethodDelete, favPath, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Favorite not found", decode(t, w)["msg"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/user/%d/favorites", userID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFavoriteErrors(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	user := testutil.User(t, s.db, "leia@rebels.org")
	vehicle := testutil.Vehicle(t, s.db, "Sand Crawler")

	tests := []struct {
		name   string
		method string
		path   string
		status int
		msg    string
	}{
		{"unknown kind", http.MethodPost, fmt.Sprintf("/favorite/starship/%d/1", user.ID), http.StatusBadRequest, "Unknown favorite kind"},
		{"bad target id", http.MethodPost, fmt.Sprintf("/favorite/vehicle/%d/abc", user.ID), http.StatusBadRequest, "invalid target_id"},
		{"missing target", http.MethodPost, fmt.Sprintf("/favorite/character/%d/99", user.ID), http.StatusNotFound, "Character not found"},
		{"missing user", http.MethodPost, fmt.Sprintf("/favorite/vehicles/999/%d", vehicle.ID), http.StatusNotFound, "User 999 not found"},
		{"remove nothing", http.MethodDelete, fmt.Sprintf("/favorite/vehicle/%d/%d", user.ID, vehicle.ID), http.StatusNotFound, "Favorite not found"},
		{"list unknown user", http.MethodGet, "/user/999/favorites", http.StatusNotFound, "User 999 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, nil)
			require.Equal(t, tt.status, w.Code, w.Body.String())
			body := decode(t, w)
			assert.Equal(t, tt.msg, body["msg"])
			assert.Contains(t, body, "error")
		})
	}

	var count int64
	require.NoError(t, s.db.Table("favorite").Count(&count).Error)
	assert.Zero(t, count)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := s.do(t, http.MethodGet, "/user", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"not found"}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/user", map[string]string{"email": "han@falcon.io", "password": "kessel"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("duplicate email", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/user", map[string]string{"email": "han@falcon.io", "password": "other"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/user", map[string]string{"email": "not-an-email"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Contains(t, body["error"], "email must be a valid email address")
		assert.Contains(t, body["error"], "password is required")
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/user", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list omits password", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/user", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		var users []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
		require.Len(t, users, 1)
		assert.Equal(t, "han@falcon.io", users[0]["email"])
	})

	t.Run("get", func(t *testing.T) {
		u := testutil.User(t, s.db, "chewie@falcon.io")
		w := s.do(t, http.MethodGet, fmt.Sprintf("/user/%d", u.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "chewie@falcon.io", decode(t, w)["email"])

		w = s.do(t, http.MethodGet, "/user/4242", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "user 4242 not found", decode(t, w)["msg"])

		w = s.do(t, http.MethodGet, "/user/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCatalog(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	for _, path := range []string{"/planets", "/characters", "/vehicles"} {
		w := s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	planet := testutil.Planet(t, s.db, "Hoth")
	character := testutil.Character(t, s.db, "Luke Skywalker")
	vehicle := testutil.Vehicle(t, s.db, "Snowspeeder")

	w := s.do(t, http.MethodGet, "/planets", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var planets []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &planets))
	require.Len(t, planets, 1)
	assert.Equal(t, "Hoth", planets[0]["name"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/characters/%d", character.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Luke Skywalker", body["name"])
	assert.Nil(t, body["gender"])

	w = s.do(t, http.MethodGet, fmt.Sprintf("/vehicles/%d", vehicle.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/planets/%d", planet.ID+100), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Planet not found", decode(t, w)["msg"])

	w = s.do(t, http.MethodGet, "/vehicles/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmptyListPolicyDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.API.EmptyListNotFound = false
	s := newTestServer(t, cfg, nil)

	for _, path := range []string{"/user", "/planets", "/characters", "/vehicles"} {
		w := s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `[]`, w.Body.String(), path)
	}
}

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func TestSitemapAndHealth(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	w := s.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sitemap struct {
		Endpoints []endpoint `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sitemap))
	require.NotEmpty(t, sitemap.Endpoints)
	assert.Equal(t, "/", sitemap.Endpoints[0].Path)

	var paths, keys []string
	for _, e := range sitemap.Endpoints {
		paths = append(paths, e.Method+" "+e.Path)
		keys = append(keys, e.Path+"\x00"+e.Method)
	}
	assert.Contains(t, paths, "POST /favorite/:kind/:user_id/:target_id")
	assert.Contains(t, paths, "DELETE /favorite/:kind/:user_id/:target_id")
	assert.Contains(t, paths, "GET /user/:user_id/favorites")
	assert.IsIncreasing(t, keys)

	w = s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestIDAndCORS(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimited(t *testing.T) {
	s := newTestServer(t, testConfig(), middleware.NewMemoryLimiter(0.001, 1))

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/health", nil).Code)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestFavoriteFeed(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)
	srv := httptest.NewServer(s.handler)
	defer srv.Close()

	user := testutil.User(t, s.db, "ben@jedi.org")
	character := testutil.Character(t, s.db, "Obi-Wan Kenobi")

	resp, err := http.Get(srv.URL + "/ws/user/999/favorites")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + fmt.Sprintf("/ws/user/%d/favorites", user.ID)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.ClientCount(user.ID) == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/favorite/characters/%d/%d", srv.URL, user.ID, character.ID), nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event struct {
		Type     string `json:"type"`
		Favorite struct {
			CharacterID *uint `json:"character_id"`
		} `json:"favorite"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "favorite_added", event.Type)
	require.NotNil(t, event.Favorite.CharacterID)
	assert.Equal(t, character.ID, *event.Favorite.CharacterID)
}
