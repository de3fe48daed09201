package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andrewpaige1/kioku-api/config"
	"github.com/andrewpaige1/kioku-api/handlers"
	"github.com/andrewpaige1/kioku-api/repository"
	"github.com/andrewpaige1/kioku-api/routes"
	"github.com/andrewpaige1/kioku-api/testdb"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	store := repository.NewStore(testdb.New(t))
	return routes.NewRouter(handlers.NewDBHandler(store, zap.NewNop()), config.Default(), zap.NewNop(), prometheus.NewRegistry())
}

func call(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func field(t *testing.T, rr *httptest.ResponseRecorder, name string) any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body[name]
}

func TestRouter_CardLifecycle(t *testing.T) {
	router := newRouter(t)

	rr := call(t, router, http.MethodPost, "/users", `{"username":"kenji","email":"kenji@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	userID := field(t, rr, "id").(string)

	rr = call(t, router, http.MethodPost, "/cards",
		`{"name":"word","front_desc":"猫","back_desc":"cat","creator_id":"`+userID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	cardID := field(t, rr, "id").(string)
	assert.Equal(t, userID, field(t, rr, "creator_id"))
	assert.Nil(t, field(t, rr, "deck_id"))

	rr = call(t, router, http.MethodGet, "/cards/"+cardID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "猫", field(t, rr, "front_desc"))

	rr = call(t, router, http.MethodDelete, "/cards/"+cardID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, cardID, field(t, rr, "id"))

	rr = call(t, router, http.MethodGet, "/cards/"+cardID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_DeckLifecycle(t *testing.T) {
	router := newRouter(t)

	rr := call(t, router, http.MethodPost, "/users", `{"username":"yuki","email":"yuki@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	userID := field(t, rr, "id").(string)

	rr = call(t, router, http.MethodPost, "/cards",
		`{"name":"word","front_desc":"犬","back_desc":"dog","creator_id":"`+userID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	cardID := field(t, rr, "id").(string)

	rr = call(t, router, http.MethodPost, "/decks", `{"name":"animals","creator_id":"`+userID+`","cards":["`+cardID+`"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	deckID := field(t, rr, "id").(string)
	assert.Equal(t, []any{cardID}, field(t, rr, "card_ids"))

	rr = call(t, router, http.MethodGet, "/cards/"+cardID, "")
	assert.Equal(t, deckID, field(t, rr, "deck_id"))

	rr = call(t, router, http.MethodDelete, "/users/"+userID, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = call(t, router, http.MethodDelete, "/decks/"+deckID, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = call(t, router, http.MethodGet, "/cards/"+cardID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, field(t, rr, "deck_id"))
}

func TestRouter_EmptyLists(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/users", "/cards", "/decks"} {
		rr := call(t, router, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.JSONEq(t, `[]`, rr.Body.String(), path)
	}
}

func TestRouter_UnknownIDs(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{"/users/nope", "/cards/nope", "/decks/nope"} {
		assert.Equal(t, http.StatusNotFound, call(t, router, http.MethodGet, path, "").Code, path)
		assert.Equal(t, http.StatusNotFound, call(t, router, http.MethodDelete, path, "").Code, path)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router := newRouter(t)

	rr := call(t, router, http.MethodPatch, "/users", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := newRouter(t)

	rr := call(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouter_Metrics(t *testing.T) {
	router := newRouter(t)

	call(t, router, http.MethodGet, "/users", "")
	call(t, router, http.MethodGet, "/users/nope", "")

	rr := call(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `kioku_http_requests_total{method="GET",route="GET /users",status="200"} 1`)
	assert.Contains(t, body, `kioku_http_requests_total{method="GET",route="GET /users/{id}",status="404"} 1`)
	assert.Contains(t, body, "kioku_http_request_duration_seconds")
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/decks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
