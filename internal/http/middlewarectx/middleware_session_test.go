package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/articlio/internal/http/middlewarectx"
	"github.com/magabrotheeeer/articlio/internal/models"
	"github.com/magabrotheeeer/articlio/internal/session"
)

// Mock for SessionResolver
type ResolverMock struct {
	mock.Mock
}

func (m *ResolverMock) Resolve(token string) (*models.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Identity), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSessionMiddleware(t *testing.T) {
	identity := &models.Identity{UID: "uid-ada", Username: "ada", Name: "Ada"}

	tests := []struct {
		name           string
		authHeader     string
		cookie         string
		setupMock      func(*ResolverMock)
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "нет токена",
			setupMock:      func(_ *ResolverMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "мертвая сессия",
			authHeader: "Bearer deadtoken",
			setupMock: func(m *ResolverMock) {
				m.On("Resolve", "deadtoken").Return(nil, session.ErrAnonymous).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "живая сессия через заголовок",
			authHeader: "Bearer goodtoken",
			setupMock: func(m *ResolverMock) {
				m.On("Resolve", "goodtoken").Return(identity, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:   "живая сессия через cookie",
			cookie: "cookietoken",
			setupMock: func(m *ResolverMock) {
				m.On("Resolve", "cookietoken").Return(identity, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolverMock := new(ResolverMock)
			tt.setupMock(resolverMock)

			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				got := middlewarectx.IdentityFromContext(r.Context())
				assert.NotNil(t, got)
				assert.Equal(t, "uid-ada", got.UID)
				w.WriteHeader(http.StatusOK)
			})

			mw := middlewarectx.SessionMiddleware(resolverMock, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewarectx.SessionCookieName, Value: tt.cookie})
			}

			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			resolverMock.AssertExpectations(t)
		})
	}
}

func TestIdentityFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, middlewarectx.IdentityFromContext(req.Context()))
}
