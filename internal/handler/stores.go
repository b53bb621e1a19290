package handler

import (
	"context"

	"github.com/yusufkecer/bmi-calculator/internal/domain"
	"github.com/yusufkecer/bmi-calculator/internal/repository"
)

type AccountStore interface {
	Create(ctx context.Context, email, passwordHash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*repository.Account, error)
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByID(ctx context.Context, accountID, id int64) (*domain.User, error)
	GetAll(ctx context.Context, accountID int64) ([]domain.User, error)
	Update(ctx context.Context, accountID, id int64, fields map[string]interface{}) error
}

// ComputationObserver is notified of every BMI computation outcome.
type ComputationObserver interface {
	ObserveComputation(outcome string)
}
