package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/yusufkecer/bmi-calculator/internal/domain"
	"github.com/yusufkecer/bmi-calculator/internal/middleware"
	"github.com/yusufkecer/bmi-calculator/internal/repository"
)

type fakeAccounts struct {
	mu       sync.Mutex
	accounts map[string]*repository.Account
	nextID   int64
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: map[string]*repository.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, email, passwordHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[email]; ok {
		return 0, repository.ErrDuplicate
	}
	f.nextID++
	f.accounts[email] = &repository.Account{ID: f.nextID, Email: email, PasswordHash: passwordHash}
	return f.nextID, nil
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*repository.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[email]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

type fakeUsers struct {
	mu      sync.Mutex
	users   map[int64]domain.User
	nextID  int64
	err     error
	updates []map[string]interface{}
	// deleteOnUpdate removes the row right after an update is applied.
	deleteOnUpdate bool
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	stored := *u
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.users[stored.ID] = stored
	return stored.ID, nil
}

func (f *fakeUsers) GetByID(_ context.Context, accountID, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok || u.AccountID != accountID {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUsers) GetAll(_ context.Context, accountID int64) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.User
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.users[id]; ok && u.AccountID == accountID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, accountID, id int64, fields map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, fields)
	u, ok := f.users[id]
	if !ok || u.AccountID != accountID {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "height":
			h, ok := v.(float64)
			if !ok {
				return errors.New("height must be a number")
			}
			u.Height = &h
		case "gender":
			g, ok := v.(int)
			if !ok {
				return errors.New("gender must be an int")
			}
			u.Gender = &g
		case "name", "surname", "avatar", "birth_of_date":
			s, ok := v.(string)
			if !ok {
				return errors.New(k + " must be a string")
			}
			switch k {
			case "name":
				u.Name = &s
			case "surname":
				u.Surname = &s
			case "avatar":
				u.Avatar = &s
			default:
				u.BirthOfDate = &s
			}
		}
	}
	f.users[id] = u
	if f.deleteOnUpdate {
		delete(f.users, id)
	}
	return nil
}

type countingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *countingObserver) ObserveComputation(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = map[string]int{}
	}
	o.counts[outcome]++
}

// newRequest builds a request as the router would after auth and routing.
func newRequest(method, target, body string, accountID int64, vars map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if accountID != 0 {
		req = req.WithContext(middleware.WithAccountID(req.Context(), accountID))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decodeBody(t, rec, &body)
	return body["error"]
}

func float64Ptr(v float64) *float64 { return &v }
