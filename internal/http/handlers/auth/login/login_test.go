package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/models"
	services "github.com/magabrotheeeer/articlio/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, username, password string) (string, *models.Identity, error) {
	args := m.Called(ctx, username, password)
	identity, _ := args.Get(1).(*models.Identity)
	return args.String(0), identity, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	token := "tok"
	identity := &models.Identity{UID: "uid-1", Username: "ada", Name: "Ada Lovelace"}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockToken      string
		mockIdentity   *models.Identity
		mockErr        error
		callExpected   bool
		wantStatusCode int
		wantData       map[string]any
		wantError      string
		wantStatus     string
		wantCookie     bool
	}{
		{
			name:           "valid login",
			requestBody:    Request{Username: "ada", Password: "password123"},
			mockToken:      token,
			mockIdentity:   identity,
			callExpected:   true,
			wantStatusCode: http.StatusOK,
			wantData: map[string]any{
				"token":    token,
				"username": "ada",
				"name":     "Ada Lovelace",
			},
			wantStatus: "OK",
			wantCookie: true,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Username: "ada"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "unknown user",
			requestBody:    Request{Username: "ghost", Password: "password123"},
			mockErr:        services.ErrInvalidCredentials,
			callExpected:   true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
			wantStatus:     "Error",
		},
		{
			name:           "wrong password",
			requestBody:    Request{Username: "ada", Password: "wrongpass"},
			mockErr:        services.ErrInvalidCredentials,
			callExpected:   true,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			requestBody:    Request{Username: "ada", Password: "password123"},
			mockErr:        errors.New("db down"),
			callExpected:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "internal service error",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callExpected {
				req := tt.requestBody.(Request)
				serviceMock.On("Login", mock.Anything, req.Username, req.Password).
					Return(tt.mockToken, tt.mockIdentity, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.wantData != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				for k, v := range tt.wantData {
					assert.Equal(t, v, data[k])
				}
			}

			var sessionCookie *http.Cookie
			for _, c := range rec.Result().Cookies() {
				if c.Name == middlewarectx.SessionCookieName {
					sessionCookie = c
				}
			}
			if tt.wantCookie {
				assert.NotNil(t, sessionCookie)
				assert.Equal(t, token, sessionCookie.Value)
				assert.True(t, sessionCookie.HttpOnly)
			} else {
				assert.Nil(t, sessionCookie)
			}

			if tt.callExpected {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
