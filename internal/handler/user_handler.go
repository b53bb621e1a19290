package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/bmi-calculator/internal/domain"
	"github.com/yusufkecer/bmi-calculator/internal/middleware"
)

type UserHandler struct {
	repo UserStore
}

func NewUserHandler(repo UserStore) *UserHandler {
	return &UserHandler{repo: repo}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountID(r.Context())

	var user domain.User
	if err := decodeAndValidate(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	user.AccountID = accountID

	id, err := h.repo.Create(r.Context(), &user)
	if err != nil {
		internalError(w, r, "failed to create user", err)
		return
	}

	user.ID = id
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.repo.GetByID(r.Context(), accountID, id)
	if err != nil {
		internalError(w, r, "failed to get user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountID(r.Context())

	users, err := h.repo.GetAll(r.Context(), accountID)
	if err != nil {
		internalError(w, r, "failed to list users", err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountID(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var patch domain.UserPatch
	if err := decodeAndValidate(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.repo.GetByID(r.Context(), accountID, id)
	if err != nil {
		internalError(w, r, "failed to get user", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	if err := h.repo.Update(r.Context(), accountID, id, patch.Columns()); err != nil {
		internalError(w, r, "failed to update user", err)
		return
	}

	user, err := h.repo.GetByID(r.Context(), accountID, id)
	if err != nil {
		internalError(w, r, "failed to get updated user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
