package models

// OpType тип отложенной операции
type OpType string

const (
	OpInsert OpType = "insert"
	OpDelete OpType = "delete"
)

// PendingOperation представляет намерение, которое еще не подтверждено сервером.
// Операции воспроизводятся строго по возрастанию CreatedAt, без переупорядочивания.
type PendingOperation struct {
	Type        OpType `json:"op_type"`                 // Type "insert" или "delete"
	Name        string `json:"name,omitempty"`          // Name имя (только insert)
	RequestID   string `json:"request_id,omitempty"`    // RequestID ключ идемпотентности для POST (только insert)
	PendingID   uint64 `json:"pending_id"`              // PendingID назначается при постановке в очередь
	ServerID    int64  `json:"server_id,omitempty"`     // ServerID id удаляемой записи (только delete)
	LocalTempID int64  `json:"local_temp_id,omitempty"` // LocalTempID временный id записи (только insert)
	CreatedAt   int64  `json:"created_at"`              // CreatedAt единственный ключ упорядочивания
	Age         int    `json:"age,omitempty"`           // Age возраст (только insert)
}

// IsInsert reports whether the operation creates a record.
func (op PendingOperation) IsInsert() bool {
	return op.Type == OpInsert
}

// IsDelete reports whether the operation removes a server record.
func (op PendingOperation) IsDelete() bool {
	return op.Type == OpDelete
}
