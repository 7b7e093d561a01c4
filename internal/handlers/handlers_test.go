package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/gallery/internal/domain"
	"github.com/nfrund/gallery/internal/handlers"
	"github.com/stretchr/testify/assert"
)

func TestCustomValidator(t *testing.T) {
	v := handlers.NewValidator()

	tests := []struct {
		name    string
		input   any
		wantErr bool
	}{
		{"valid profile", &domain.ProfileInput{Name: "Jacques", About: "Explorer"}, false},
		{"short name", &domain.ProfileInput{Name: "J", About: "Explorer"}, true},
		{"valid card", &domain.CardInput{Name: "Lake", ImageURL: "https://x/lake.jpg"}, false},
		{"card link is not a url", &domain.CardInput{Name: "Lake", ImageURL: "lake"}, true},
		{"empty avatar", &domain.AvatarInput{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	status, body := handlers.NewErrorResponse(echo.NewHTTPError(http.StatusNotFound, "unknown popup"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, handlers.ErrorResponse{Code: "not_found", Message: "unknown popup"}, body)

	status, body = handlers.NewErrorResponse(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal", body.Code)
	assert.NotContains(t, body.Message, "boom")
}

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	assert.NoError(t, handlers.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
