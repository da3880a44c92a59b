package api

import (
	"errors"
	"fmt"
)

// RemoteError оборачивает любой сбой обращения к серверу:
// транспорт, таймаут, не-2xx статус или некорректный JSON.
type RemoteError struct {
	Err error
	Op  string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// StatusCode returns HTTP status of the failed call or 0 for transport errors
func (e *RemoteError) StatusCode() int {
	var se *StatusError
	if errors.As(e.Err, &se) {
		return se.Code
	}
	return 0
}

// StatusError описывает ответ сервера с не-2xx статусом
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Code)
	}
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

// IsRemote reports whether err came from the remote authority
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
