package models

import "time"

// Session — серверная запись о входе пользователя. Живёт только в памяти
// процесса: при перезапуске сервиса все сессии теряются.
type Session struct {
	ID        string    // Идентификатор сессии, ключ серверной таблицы
	UserUID   string    // Идентификатор пользователя
	Username  string    // Имя учётной записи
	Name      string    // Отображаемое имя пользователя
	ExpiresAt time.Time // Момент истечения сессии
}

// Identity — разрешённая личность текущего запроса. Значение кладётся
// в контекст запроса после проверки сессии; анонимные запросы личности
// не имеют.
type Identity struct {
	UID      string // Идентификатор пользователя
	Username string // Имя учётной записи
	Name     string // Отображаемое имя
}
