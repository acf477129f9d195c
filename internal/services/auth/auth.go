// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации и завершения сессий пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/articlio/internal/lib/password"
	"github.com/magabrotheeeer/articlio/internal/lib/sl"
	"github.com/magabrotheeeer/articlio/internal/models"
	"github.com/magabrotheeeer/articlio/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неудачном входе. Неизвестный
// username и неверный пароль наружу не различаются, чтобы по ответу нельзя
// было перебирать занятые имена; ветки различимы только в логах.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SessionManager описывает контракт серверных сессий.
type SessionManager interface {
	// Start создает сессию для пользователя и возвращает токен.
	Start(user *models.User) (string, error)
	// End завершает сессию по токену; идемпотентна.
	End(token string)
}

// AuthService отвечает за регистрацию, вход и выход пользователей.
type AuthService struct {
	users    UserRepository
	sessions SessionManager
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionManager, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Успешная регистрация не открывает сессию: пользователь входит отдельно.
func (s *AuthService) Register(ctx context.Context, name, email, username, rawPassword string) (string, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", err
	}

	s.log.Info("registered new user", slog.String("username", username))
	return uid, nil
}

// Login проверяет учетные данные и открывает сессию. Возвращает токен
// сессии и личность вошедшего пользователя.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, *models.Identity, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Info("login failed: username not found", slog.String("username", username))
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !password.Verify(user.PasswordHash, rawPassword) {
		s.log.Info("login failed: wrong password", slog.String("username", username))
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Start(user)
	if err != nil {
		s.log.Error("failed to start session", sl.Err(err))
		return "", nil, err
	}

	return token, &models.Identity{
		UID:      user.UID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Logout завершает сессию по токену. Всегда успешен: повторный выход
// и выход с мусорным токеном приводят к тому же результату — Anonymous.
func (s *AuthService) Logout(token string) {
	s.sessions.End(token)
}
