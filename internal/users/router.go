package users

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/idilsaglam/bootcamp/internal/httpx"
	"github.com/idilsaglam/bootcamp/internal/model"
)

// Router is the routed users server. It keeps users in memory.
type Router struct {
	mu    sync.RWMutex
	users []model.User
	mux   *http.ServeMux
	log   *slog.Logger
}

func NewRouter(log *slog.Logger) *Router {
	rt := &Router{users: Seed(), mux: http.NewServeMux(), log: log}
	rt.mux.HandleFunc("GET /{$}", rt.home)
	rt.mux.HandleFunc("GET /api/users", rt.list)
	rt.mux.HandleFunc("GET /api/users/{id}", rt.get)
	rt.mux.HandleFunc("POST /api/users", rt.create)
	rt.mux.Handle("/", httpx.NotFound("Not Found"))
	return rt
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mux.ServeHTTP(w, r)
}

func (rt *Router) home(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Hello, World!"})
}

func (rt *Router) list(w http.ResponseWriter, _ *http.Request) {
	rt.mu.RLock()
	out := slices.Clone(rt.users)
	rt.mu.RUnlock()
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (rt *Router) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	rt.mu.RLock()
	idx := slices.IndexFunc(rt.users, func(u model.User) bool { return u.ID == id })
	var u model.User
	if idx >= 0 {
		u = rt.users[idx]
	}
	rt.mu.RUnlock()

	if idx < 0 {
		httpx.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

func (rt *Router) create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Name is required")
		return
	}

	rt.mu.Lock()
	u := model.User{ID: len(rt.users) + 1, Name: body.Name}
	rt.users = append(rt.users, u)
	rt.mu.Unlock()

	rt.log.Info("user created", "id", u.ID)
	httpx.WriteJSON(w, http.StatusCreated, u)
}
