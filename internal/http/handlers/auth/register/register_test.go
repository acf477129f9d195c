package register

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

	"github.com/magabrotheeeer/articlio/internal/storage/repository"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, name, email, username, password string) (string, error) {
	args := m.Called(ctx, name, email, username, password)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	validReq := Request{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Username: "ada",
		Password: "password123",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUID        string
		mockErr        error
		callExpected   bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid registration",
			requestBody:    validReq,
			mockUID:        "uid-1",
			mockErr:        nil,
			callExpected:   true,
			wantStatusCode: http.StatusOK,
			wantError:      "",
			wantStatus:     "OK",
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
			requestBody:    Request{Name: "Ada", Email: "ada@example.com", Username: "ada"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - bad email",
			requestBody:    Request{Name: "Ada", Email: "not-an-email", Username: "ada", Password: "password123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Email must be a valid email address",
			wantStatus:     "Error",
		},
		{
			name:           "username already taken",
			requestBody:    validReq,
			mockErr:        repository.ErrUserExists,
			callExpected:   true,
			wantStatusCode: http.StatusConflict,
			wantError:      "user with this username already exists",
			wantStatus:     "Error",
		},
		{
			name:           "storage error",
			requestBody:    validReq,
			mockErr:        errors.New("db down"),
			callExpected:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.callExpected {
				req := tt.requestBody.(Request)
				serviceMock.On("Register", mock.Anything, req.Name, req.Email, req.Username, req.Password).
					Return(tt.mockUID, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(bodyBytes))
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
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, validReq.Username, data["username"])
			}

			if tt.callExpected {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
