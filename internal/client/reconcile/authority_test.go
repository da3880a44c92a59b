package reconcile

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/iudanet/usersync/internal/models"
	"github.com/iudanet/usersync/pkg/api"
)

// fakeAuthority in-memory сервер пользователей с внедрением отказов
type fakeAuthority struct {
	*httptest.Server

	// reject возвращает true, если вызов под номером n (среди мутаций) должен получить 500
	reject func(call string, n int) bool

	users  map[int64]api.User
	keys   map[string]int64
	calls  []string
	nextID int64

	// loseCreateResponses: столько POST будут закоммичены, но ответят 500
	loseCreateResponses int
	listDown            bool
	mu                  sync.Mutex
}

func newFakeAuthority(t *testing.T, seed ...models.Record) *fakeAuthority {
	t.Helper()

	fa := &fakeAuthority{
		users:  make(map[int64]api.User),
		keys:   make(map[string]int64),
		nextID: 1,
	}
	for _, r := range seed {
		fa.users[r.ID] = api.User{ID: r.ID, Name: r.Name, Age: r.Age}
		if r.ID >= fa.nextID {
			fa.nextID = r.ID + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users", fa.list)
	mux.HandleFunc("POST /api/users", fa.create)
	mux.HandleFunc("DELETE /api/users/{id}", fa.delete)
	fa.Server = httptest.NewServer(mux)
	t.Cleanup(fa.Close)

	return fa
}

func (fa *fakeAuthority) list(w http.ResponseWriter, r *http.Request) {
	fa.mu.Lock()
	defer fa.mu.Unlock()

	if fa.listDown {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	users := make([]api.User, 0, len(fa.users))
	for _, u := range fa.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	_ = json.NewEncoder(w).Encode(users)
}

func (fa *fakeAuthority) create(w http.ResponseWriter, r *http.Request) {
	fa.mu.Lock()
	defer fa.mu.Unlock()

	if fa.rejected("POST") {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}

	var req api.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	key := r.Header.Get(api.IdempotencyKeyHeader)
	if id, ok := fa.keys[key]; ok && key != "" {
		_ = json.NewEncoder(w).Encode(fa.users[id])
		return
	}

	u := api.User{ID: fa.nextID, Name: req.Name, Age: req.Age}
	fa.nextID++
	fa.users[u.ID] = u
	if key != "" {
		fa.keys[key] = u.ID
	}

	if fa.loseCreateResponses > 0 {
		fa.loseCreateResponses--
		http.Error(w, "lost", http.StatusBadGateway)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

func (fa *fakeAuthority) delete(w http.ResponseWriter, r *http.Request) {
	fa.mu.Lock()
	defer fa.mu.Unlock()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if fa.rejected(fmt.Sprintf("DELETE %d", id)) {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}

	if _, ok := fa.users[id]; !ok {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	delete(fa.users, id)
	w.WriteHeader(http.StatusNoContent)
}

// rejected учитывает вызов и решает, отказать ли ему. Вызывается под mu.
func (fa *fakeAuthority) rejected(call string) bool {
	n := len(fa.calls)
	fa.calls = append(fa.calls, call)
	return fa.reject != nil && fa.reject(call, n)
}

func (fa *fakeAuthority) setReject(fn func(call string, n int) bool) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.reject = fn
}

func (fa *fakeAuthority) setNextID(id int64) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.nextID = id
}

func (fa *fakeAuthority) loseCreates(n int) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.loseCreateResponses = n
}

func (fa *fakeAuthority) setListDown(down bool) {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	fa.listDown = down
}

func (fa *fakeAuthority) mutations() []string {
	fa.mu.Lock()
	defer fa.mu.Unlock()
	return append([]string(nil), fa.calls...)
}

func (fa *fakeAuthority) records() []models.Record {
	fa.mu.Lock()
	defer fa.mu.Unlock()

	out := make([]models.Record, 0, len(fa.users))
	for _, u := range fa.users {
		out = append(out, models.Record{ID: u.ID, Name: u.Name, Age: u.Age})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func rejectAll(string, int) bool { return true }
