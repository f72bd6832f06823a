package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGamesHandler(t *testing.T) {
	h := NewGamesHandler(testStorage(t), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/games", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var games map[string]string
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	assert.Equal(t, "locked-study", games["The Locked Study"])
}

func TestGamesHandler_MethodNotAllowed(t *testing.T) {
	h := NewGamesHandler(testStorage(t), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/games", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
