package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yusufkecer/bmi-calculator/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestAuthHandler() (*AuthHandler, *fakeAccounts) {
	accounts := newFakeAccounts()
	h := NewAuthHandler(testSecret, accounts)
	h.bcryptCost = bcrypt.MinCost
	return h, accounts
}

func TestRegister(t *testing.T) {
	h, accounts := newTestAuthHandler()

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/auth/register", `{"email":"  Jane@Example.COM ","password":"secret1"}`, 0, nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", rec.Code, rec.Body.String())
	}
	var resp domain.TokenResponse
	decodeBody(t, rec, &resp)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	if err != nil || !token.Valid {
		t.Fatalf("issued token is invalid: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["email"] != "jane@example.com" {
		t.Errorf("email claim = %v, want normalized address", claims["email"])
	}

	stored, _ := accounts.GetByEmail(context.Background(), "jane@example.com")
	if stored == nil {
		t.Fatal("account not stored under normalized email")
	}
	if stored.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterRejects(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "malformed", body: `{`, wantStatus: http.StatusBadRequest, wantError: "invalid request body"},
		{name: "missing email", body: `{"password":"secret1"}`, wantStatus: http.StatusBadRequest, wantError: "email is required"},
		{name: "bad email", body: `{"email":"jane","password":"secret1"}`, wantStatus: http.StatusBadRequest, wantError: "invalid email format"},
		{name: "short password", body: `{"email":"jane@example.com","password":"abc"}`, wantStatus: http.StatusBadRequest, wantError: "password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestAuthHandler()
			rec := httptest.NewRecorder()
			h.Register(rec, newRequest(http.MethodPost, "/auth/register", tt.body, 0, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := errorMessage(t, rec); got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	h, _ := newTestAuthHandler()
	body := `{"email":"jane@example.com","password":"secret1"}`

	h.Register(httptest.NewRecorder(), newRequest(http.MethodPost, "/auth/register", body, 0, nil))
	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/auth/register", body, 0, nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	h, _ := newTestAuthHandler()
	h.Register(httptest.NewRecorder(), newRequest(http.MethodPost, "/auth/register", `{"email":"jane@example.com","password":"secret1"}`, 0, nil))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "valid", body: `{"email":"JANE@example.com","password":"secret1"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"email":"jane@example.com","password":"secret2"}`, wantStatus: http.StatusUnauthorized},
		{name: "unknown email", body: `{"email":"john@example.com","password":"secret1"}`, wantStatus: http.StatusUnauthorized},
		{name: "invalid email", body: `{"email":"john","password":"secret1"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Login(rec, newRequest(http.MethodPost, "/auth/login", tt.body, 0, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if got := errorMessage(t, rec); got != "invalid email or password" {
					t.Errorf("error = %q", got)
				}
			}
		})
	}
}
