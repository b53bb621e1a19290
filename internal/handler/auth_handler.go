package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/yusufkecer/bmi-calculator/internal/domain"
	"github.com/yusufkecer/bmi-calculator/internal/middleware"
	"github.com/yusufkecer/bmi-calculator/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	jwtSecret  string
	repo       AccountStore
	bcryptCost int
}

func NewAuthHandler(jwtSecret string, repo AccountStore) *AuthHandler {
	return &AuthHandler{
		jwtSecret:  jwtSecret,
		repo:       repo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTokenRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		internalError(w, r, "failed to hash password", err)
		return
	}

	accountID, err := h.repo.Create(r.Context(), req.Email, string(passwordHash))
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		internalError(w, r, "failed to create account", err)
		return
	}

	token, err := middleware.GenerateToken(accountID, req.Email, h.jwtSecret)
	if err != nil {
		internalError(w, r, "failed to generate token", err)
		return
	}

	writeJSON(w, http.StatusCreated, domain.TokenResponse{Token: token})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodeTokenRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		internalError(w, r, "failed to login", err)
		return
	}
	if account == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(account.PasswordHash),
		[]byte(req.Password),
	)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := middleware.GenerateToken(account.ID, account.Email, h.jwtSecret)
	if err != nil {
		internalError(w, r, "failed to generate token", err)
		return
	}

	writeJSON(w, http.StatusOK, domain.TokenResponse{Token: token})
}

// decodeTokenRequest normalizes the email before validation.
func decodeTokenRequest(r *http.Request) (*domain.TokenRequest, error) {
	var req domain.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := validate.Struct(&req); err != nil {
		return nil, validationMessage(err)
	}
	return &req, nil
}
