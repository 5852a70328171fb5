package tasks

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/idilsaglam/bootcamp/internal/httpx"
	"github.com/idilsaglam/bootcamp/internal/model"
)

// maxBodyBytes caps request bodies; larger ones are answered as invalid JSON.
const maxBodyBytes = 1 << 20

// Handler serves the /api/tasks routes over a Store.
type Handler struct {
	store *Store
	log   *slog.Logger
}

func NewHandler(store *Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// Register mounts the task routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tasks", h.list)
	mux.HandleFunc("POST /api/tasks", h.create)
	mux.HandleFunc("GET /api/tasks/{id}", h.get)
	mux.HandleFunc("PUT /api/tasks/{id}", h.replace)
	mux.HandleFunc("PATCH /api/tasks/{id}", h.patch)
	mux.HandleFunc("DELETE /api/tasks/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in model.TaskInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.store.Create(in)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("task created", "id", t.ID)
	httpx.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	t, err := h.store.Get(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var in model.TaskInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.store.Replace(id, in)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) patch(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	var p model.TaskPatch
	if !decode(w, r, &p) {
		return
	}
	t, err := h.store.Patch(id, p)
	if err != nil {
		h.fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		h.fail(w, err)
		return
	}
	h.log.Info("task deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// fail maps store errors onto HTTP statuses.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, ErrTitleRequired):
		httpx.WriteError(w, http.StatusBadRequest, "Title is required")
	default:
		h.log.Error("task store", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid task id")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
