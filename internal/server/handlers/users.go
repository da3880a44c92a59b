package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/usersync/internal/models"
	"github.com/iudanet/usersync/internal/server/storage"
	"github.com/iudanet/usersync/internal/validation"
	"github.com/iudanet/usersync/pkg/api"
)

const (
	maxBodyBytes = 1 << 16
	// maxKeyLen клиент отправляет UUID, запас для других клиентов
	maxKeyLen = 255
)

// UsersHandler обрабатывает CRUD запросы пользователей
type UsersHandler struct {
	logger  *slog.Logger
	storage storage.UserStorage
}

// NewUsersHandler создает новый handler пользователей
func NewUsersHandler(logger *slog.Logger, storage storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger:  logger,
		storage: storage,
	}
}

// List обрабатывает GET /api/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.storage.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.User, 0, len(users))
	for _, u := range users {
		resp = append(resp, toAPI(u))
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create обрабатывает POST /api/users
// С заголовком Idempotency-Key повторный запрос возвращает уже созданного пользователя (200)
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}

	key := r.Header.Get(api.IdempotencyKeyHeader)
	if len(key) > maxKeyLen {
		sendError(h.logger, w, "idempotency key is too long", http.StatusBadRequest)
		return
	}

	user, created, err := h.storage.CreateUser(ctx, req.Name, req.Age, key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyConflict) {
			h.logger.WarnContext(ctx, "idempotency key reused", slog.String("key", key))
			sendError(h.logger, w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !created {
		h.logger.InfoContext(ctx, "repeated create request",
			slog.Int64("id", user.ID),
			slog.String("key", key))
		sendJSON(h.logger, w, toAPI(user), http.StatusOK)
		return
	}

	h.logger.InfoContext(ctx, "user created", slog.Int64("id", user.ID))
	sendJSON(h.logger, w, toAPI(user), http.StatusCreated)
}

// Update обрабатывает PUT /api/users/{id}
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeUser(w, r)
	if !ok {
		return
	}

	user, err := h.storage.UpdateUser(ctx, id, req.Name, req.Age)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update user", slog.Int64("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user updated", slog.Int64("id", id))
	sendJSON(h.logger, w, toAPI(user), http.StatusOK)
}

// Delete обрабатывает DELETE /api/users/{id}
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.storage.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete user", slog.Int64("id", id), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user deleted", slog.Int64("id", id))
	w.WriteHeader(http.StatusNoContent)
}

// decodeUser разбирает и валидирует тело запроса; имя нормализуется
func (h *UsersHandler) decodeUser(w http.ResponseWriter, r *http.Request) (api.UserRequest, bool) {
	var req api.UserRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(r.Context(), "failed to decode user request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return req, false
	}

	req.Name = validation.NormalizeName(req.Name)
	if err := validation.ValidateUser(req.Name, req.Age); err != nil {
		h.logger.WarnContext(r.Context(), "invalid user", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return req, false
	}

	return req, true
}

func (h *UsersHandler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		sendError(h.logger, w, "invalid user id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func toAPI(u models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, Age: u.Age}
}
