package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-scheduler/internal/repository"
	"github.com/iliyamo/cinema-scheduler/internal/service"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", &service.ValidationError{Messages: []string{"a", "b"}}, http.StatusBadRequest, `{"error":"validation_failed","messages":["a","b"]}`},
		{"not found", repository.ErrRoomNotFound, http.StatusNotFound, `{"error":"room not found"}`},
		{"wrapped not found", fmt.Errorf("lookup: %w", repository.ErrShowNotFound), http.StatusNotFound, ""},
		{"conflict", repository.ErrConflict, http.StatusConflict, `{"error":"concurrent modification occurred; please try again"}`},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			assert.NoError(t, writeError(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestConstructorsPanicOnNil(t *testing.T) {
	assert.Panics(t, func() { NewCatalogHandler(nil, repository.NewRoomRepo()) })
	assert.Panics(t, func() { NewScheduleHandler(nil, nil) })
}
