package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yusufkecer/bmi-calculator/internal/domain"
)

var updatableColumns = map[string]bool{
	"name": true, "surname": true, "gender": true,
	"avatar": true, "height": true, "birth_of_date": true,
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (account_id, name, surname, gender, avatar, height, birth_of_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.AccountID, u.Name, u.Surname, u.Gender, u.Avatar, u.Height, u.BirthOfDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return result.LastInsertId()
}

// GetByID returns nil when the profile does not exist or belongs to another account.
func (r *UserRepository) GetByID(ctx context.Context, accountID, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, account_id, name, surname, gender, avatar, height, birth_of_date, created_at, updated_at
		 FROM users WHERE id = ? AND account_id = ?`, id, accountID,
	).Scan(&u.ID, &u.AccountID, &u.Name, &u.Surname, &u.Gender, &u.Avatar, &u.Height, &u.BirthOfDate, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetAll(ctx context.Context, accountID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, account_id, name, surname, gender, avatar, height, birth_of_date, created_at, updated_at
		 FROM users WHERE account_id = ? ORDER BY id ASC`, accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.AccountID, &u.Name, &u.Surname, &u.Gender, &u.Avatar, &u.Height, &u.BirthOfDate, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, accountID, id int64, fields map[string]interface{}) error {
	setClauses, args := updateClauses(fields)
	if len(setClauses) == 0 {
		return nil
	}

	args = append(args, id, accountID)
	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = ? AND account_id = ?"

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// updateClauses keeps whitelisted columns only, in a stable order.
func updateClauses(fields map[string]interface{}) ([]string, []interface{}) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if updatableColumns[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	setClauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		setClauses = append(setClauses, k+" = ?")
		args = append(args, fields[k])
	}
	return setClauses, args
}
