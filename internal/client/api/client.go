package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/usersync/internal/models"
	"github.com/iudanet/usersync/pkg/api"
)

// DefaultTimeout ограничивает один round trip к серверу
const DefaultTimeout = 30 * time.Second

const usersPath = "/api/users"

//go:generate moq -out clientapi_mock.go . ClientAPI

// ClientAPI описывает удалённый источник истины для записей пользователей.
// Каждый вызов - ровно один запрос без внутренних повторов.
type ClientAPI interface {
	ListUsers(ctx context.Context) ([]models.Record, error)
	CreateUser(ctx context.Context, name string, age int, requestID string) (*models.Record, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ClientAPI = (*Client)(nil)

// NewClient создает новый API клиент
// timeout <= 0 означает DefaultTimeout
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListUsers получает полный список пользователей с сервера
func (c *Client) ListUsers(ctx context.Context) ([]models.Record, error) {
	var users []api.User
	if err := c.doRequest(ctx, http.MethodGet, usersPath, nil, nil, &users); err != nil {
		return nil, &RemoteError{Op: "list users", Err: err}
	}

	records := make([]models.Record, 0, len(users))
	for _, u := range users {
		records = append(records, models.Record{ID: u.ID, Name: u.Name, Age: u.Age})
	}
	return records, nil
}

// CreateUser создает пользователя на сервере и возвращает запись с серверным id.
// Непустой requestID отправляется в заголовке Idempotency-Key.
func (c *Client) CreateUser(ctx context.Context, name string, age int, requestID string) (*models.Record, error) {
	var headers map[string]string
	if requestID != "" {
		headers = map[string]string{api.IdempotencyKeyHeader: requestID}
	}

	var user api.User
	req := api.UserRequest{Name: name, Age: age}
	if err := c.doRequest(ctx, http.MethodPost, usersPath, headers, req, &user); err != nil {
		return nil, &RemoteError{Op: "create user", Err: err}
	}

	return &models.Record{ID: user.ID, Name: user.Name, Age: user.Age}, nil
}

// DeleteUser удаляет пользователя на сервере
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := usersPath + "/" + strconv.FormatInt(id, 10)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return &RemoteError{Op: "delete user", Err: err}
	}
	return nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, headers map[string]string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func newStatusError(code int, body []byte) error {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		msg := errResp.Message
		if msg == "" {
			msg = errResp.Error
		}
		if msg != "" {
			return &StatusError{Code: code, Message: msg}
		}
	}
	return &StatusError{Code: code, Message: strings.TrimSpace(string(body))}
}
