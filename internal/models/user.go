// Package models содержит доменную модель пользователя сервиса,
// включающую данные учётной записи, хэш пароля и дату регистрации.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя сервиса.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Name         string    // Отображаемое имя пользователя
	Email        string    // Электронная почта
	Username     string    // Имя учётной записи (уникальное)
	PasswordHash string    // Хэш пароля пользователя
	RegisteredAt time.Time // Дата и время регистрации
}
