package reconcile

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iudanet/usersync/internal/client/api"
)

// ErrInvalidRecord имя или возраст не проходят проверку; ничего не сохранено и не поставлено в очередь
var ErrInvalidRecord = errors.New("invalid user record")

// StorageError локальный сбой ввода-вывода. Операция прервана,
// предыдущее состояние хранилища сохранено.
type StorageError struct {
	Err error
	Op  string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is a local storage failure
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// alreadyDeleted: сервер ответил 404 на DELETE, запись там уже отсутствует
func alreadyDeleted(err error) bool {
	var re *api.RemoteError
	return errors.As(err, &re) && re.StatusCode() == http.StatusNotFound
}
