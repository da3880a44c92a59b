package api

// UserRequest представляет тело запроса на создание или обновление пользователя
type UserRequest struct {
	Name string `json:"name"` // имя пользователя
	Age  int    `json:"age"`  // возраст
}

// User представляет пользователя в ответах сервера
type User struct {
	Name string `json:"name"` // имя пользователя
	ID   int64  `json:"id"`   // идентификатор, назначенный сервером
	Age  int    `json:"age"`  // возраст
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// IdempotencyKeyHeader заголовок, по которому сервер отбрасывает повторные POST
const IdempotencyKeyHeader = "Idempotency-Key"
