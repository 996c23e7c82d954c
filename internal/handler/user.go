package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msomdec/userfile/internal/domain"
	"github.com/msomdec/userfile/internal/service"
)

// UserHandler handles the user CRUD HTTP requests.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// HandleList responds with every user and the collection count.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeInternal(w, "Error fetching users", err)
		return
	}
	writeList(w, toUserDTOs(users), len(users))
}

// HandleCreate validates the body and appends a new user.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := readJSON(r, &req); err != nil {
		writeInternal(w, "Error creating user", err)
		return
	}

	user, err := h.users.Create(r.Context(), service.CreateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Age:     req.Age,
		Country: req.Country,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeFailure(w, http.StatusBadRequest, "Name and email are required fields")
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeFailure(w, http.StatusBadRequest, "Email already exists")
		default:
			writeInternal(w, "Error creating user", err)
		}
		return
	}

	writeData(w, http.StatusCreated, "User created successfully", toUserDTO(user))
}

// HandleUpdate merges the body fields over an existing user.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateUserRequest
	if err := readJSON(r, &req); err != nil {
		writeInternal(w, "Error updating user", err)
		return
	}

	user, err := h.users.Update(r.Context(), id, req.toPatch())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternal(w, "Error updating user", err)
		return
	}

	writeData(w, http.StatusOK, "User updated successfully", toUserDTO(user))
}

// HandleDelete removes a user and responds with the removed record.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, "User not found")
			return
		}
		writeInternal(w, "Error deleting user", err)
		return
	}

	writeData(w, http.StatusOK, "User deleted successfully", toUserDTO(user))
}
