package models

import "time"

// User представляет строку пользователя на сервере
type User struct {
	CreatedAt time.Time `json:"created_at"` // время создания
	UpdatedAt time.Time `json:"updated_at"` // время последнего обновления
	Name      string    `json:"name"`       // имя пользователя
	ID        int64     `json:"id"`         // идентификатор, назначенный сервером
	Age       int       `json:"age"`        // возраст
}

// Record returns the client-visible part of the user.
func (u User) Record() Record {
	return Record{ID: u.ID, Name: u.Name, Age: u.Age}
}
