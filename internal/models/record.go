package models

// Record представляет одну запись пользователя в локальном зеркале.
// ID >= 0 назначен сервером, ID < 0 - временный локальный идентификатор,
// который будет заменен серверным после успешного replay.
type Record struct {
	Name string `json:"name"` // Name имя пользователя
	ID   int64  `json:"id"`   // ID идентификатор записи (серверный или временный)
	Age  int    `json:"age"`  // Age возраст
}

// IsTemporary reports whether the record still waits for a server-assigned id.
func (r Record) IsTemporary() bool {
	return r.ID < 0
}

// NextTempID вычисляет следующий временный идентификатор по минимальному id в хранилище.
// Если минимальный id <= 0, результат на единицу меньше; иначе -1.
// hasRecords == false означает пустое хранилище.
func NextTempID(minID int64, hasRecords bool) int64 {
	if hasRecords && minID <= 0 {
		return minID - 1
	}
	return -1
}
