// Package models содержит доменную модель статьи,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Article представляет собой опубликованную статью.
// Поле OwnerUID задаётся один раз при создании и никогда не меняется.
// Поле Author — снимок отображаемого имени владельца на момент публикации,
// при переименовании пользователя оно не пересчитывается.
type Article struct {
	ID       string    `json:"id"`        // Уникальный идентификатор статьи
	OwnerUID string    `json:"owner_uid"` // Идентификатор владельца (User.UID)
	Title    string    `json:"title"`     // Заголовок статьи
	Body     string    `json:"body"`      // Текст статьи
	Author   string    `json:"author"`    // Отображаемое имя автора на момент создания
	PostedAt time.Time `json:"posted_at"` // Дата и время публикации
}

// DummyArticle используется для приёма данных статьи из JSON-запроса
// до их валидации. Принимаются только заголовок и текст: владелец, автор
// и дата публикации назначаются сервером.
type DummyArticle struct {
	Title string `json:"title" validate:"required,max=200"` // Заголовок
	Body  string `json:"body" validate:"required"`          // Текст
}
