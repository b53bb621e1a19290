package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/bmi-calculator/internal/bmi"
	"github.com/yusufkecer/bmi-calculator/internal/domain"
	"github.com/yusufkecer/bmi-calculator/internal/metrics"
	"github.com/yusufkecer/bmi-calculator/internal/middleware"
)

type BMIHandler struct {
	users    UserStore
	observer ComputationObserver
}

// NewBMIHandler returns a handler for the calculator endpoints. observer may be nil.
func NewBMIHandler(users UserStore, observer ComputationObserver) *BMIHandler {
	return &BMIHandler{users: users, observer: observer}
}

// Compute handles POST /bmi with an explicit weight and height.
func (h *BMIHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req domain.BMIRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respond(w, *req.Weight, *req.Height)
}

// ForUser handles GET /users/{id}/bmi?weight=<kg> using the profile height.
func (h *BMIHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	accountID, _ := middleware.AccountID(r.Context())

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	rawWeight := r.URL.Query().Get("weight")
	if rawWeight == "" {
		writeError(w, http.StatusBadRequest, "weight is required")
		return
	}
	weight, err := strconv.ParseFloat(rawWeight, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid weight")
		return
	}

	user, err := h.users.GetByID(r.Context(), accountID, userID)
	if err != nil {
		internalError(w, r, "failed to get user", err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if user.Height == nil {
		writeError(w, http.StatusUnprocessableEntity, "user height is not set")
		return
	}

	h.respond(w, weight, *user.Height)
}

func (h *BMIHandler) respond(w http.ResponseWriter, weight, height float64) {
	result, err := bmi.Compute(weight, height)
	switch {
	case errors.Is(err, bmi.ErrInvalidHeight):
		h.observe(metrics.OutcomeInvalidHeight)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "failed to compute bmi")
		return
	}

	// JSON has no encoding for NaN or infinities.
	if math.IsNaN(result) || math.IsInf(result, 0) {
		h.observe(metrics.OutcomeOutOfRange)
		writeError(w, http.StatusUnprocessableEntity, "bmi is out of range")
		return
	}

	h.observe(metrics.OutcomeOK)
	writeJSON(w, http.StatusOK, domain.BMIResponse{Weight: weight, Height: height, BMI: result})
}

func (h *BMIHandler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveComputation(outcome)
	}
}
