package api

// SignalEventServerOnline объявление сервера о доступности, отправляется при каждом подключении
const SignalEventServerOnline = "serverOnline"

// SignalMessage представляет текстовый JSON фрейм сигнального канала
type SignalMessage struct {
	Event string `json:"event"`
}
