// Package session реализует серверные сессии пользователей.
//
// Таблица сессий живёт только в памяти процесса: выход из системы или
// перезапуск сервиса делает выданные токены недействительными независимо
// от их подписи. Таблица рассчитана на конкурентный доступ из множества
// одновременных запросов.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/articlio/internal/models"
)

// ErrAnonymous возвращается из Resolve, когда предъявленный токен не
// соответствует живой сессии: токена нет, он не разбирается, сессия
// завершена или истекла.
var ErrAnonymous = errors.New("anonymous: no active session")

const cleanupInterval = time.Minute

// Manager хранит таблицу активных сессий и выдаёт токены.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	maker    TokenMaker
	ttl      time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewManager создает менеджер сессий и запускает фоновую очистку
// истекших записей.
func NewManager(maker TokenMaker, ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*models.Session),
		maker:    maker,
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go m.cleanup()
	return m
}

// Start создает сессию для пользователя и возвращает токен-носитель.
func (m *Manager) Start(user *models.User) (string, error) {
	sessionID := uuid.NewString()
	token, err := m.maker.GenerateToken(sessionID, user.Username)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.sessions[sessionID] = &models.Session{
		ID:        sessionID,
		UserUID:   user.UID,
		Username:  user.Username,
		Name:      user.Name,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	m.mu.Unlock()

	return token, nil
}

// Resolve определяет личность по токену. Возвращает ErrAnonymous для
// любого токена без живой сессии.
func (m *Manager) Resolve(token string) (*models.Identity, error) {
	claims, err := m.maker.ParseToken(token)
	if err != nil {
		return nil, ErrAnonymous
	}

	m.mu.RLock()
	s, ok := m.sessions[claims.ID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrAnonymous
	}
	if time.Now().After(s.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
		return nil, ErrAnonymous
	}

	return &models.Identity{
		UID:      s.UserUID,
		Username: s.Username,
		Name:     s.Name,
	}, nil
}

// End завершает сессию, соответствующую токену. Идемпотентна: повторное
// завершение или неизвестный токен — не ошибка.
func (m *Manager) End(token string) {
	claims, err := m.maker.ParseToken(token)
	if err != nil {
		return
	}
	m.mu.Lock()
	delete(m.sessions, claims.ID)
	m.mu.Unlock()
}

// Close останавливает фоновую очистку.
func (m *Manager) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *Manager) cleanup() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for id, s := range m.sessions {
				if now.After(s.ExpiresAt) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
