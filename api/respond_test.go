package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devsearch-app/backend/errs"
)

func testResponder() Responder {
	return NewResponder(zerolog.Nop())
}

func TestWriteErrorMapsApiErr(t *testing.T) {
	rec := httptest.NewRecorder()
	testResponder().WriteError(rec, errs.NewNotFoundError("project not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "project not found", body["error"])
	assert.Equal(t, "error", body["status"])
}

func TestWriteErrorIncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	testResponder().WriteError(rec, errs.NewValidationError("value", "value must be 'up' or 'down'"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "value", body["field"])
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	testResponder().WriteError(rec, errors.New("pq: connection refused on 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestWriteFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	testResponder().WriteFieldErrors(rec, map[string][]string{
		"username": {"This username is already taken."},
		"password": {"Password must be at least 8 characters."},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Status string              `json:"status"`
		Fields map[string][]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Status)
	assert.Len(t, body.Fields, 2)
}
