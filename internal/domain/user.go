package domain

import "time"

// User is a profile owned by an account. Height is in meters.
type User struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,max=100"`
	Surname     *string   `json:"surname" validate:"omitempty,max=100"`
	Gender      *int      `json:"gender" validate:"omitempty,min=0,max=2"`
	Avatar      *string   `json:"avatar" validate:"omitempty,max=50"`
	Height      *float64  `json:"height"`
	BirthOfDate *string   `json:"birthOfDate" validate:"omitempty,max=20"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserPatch is a partial profile update. Nil fields are left unchanged.
type UserPatch struct {
	Name        *string  `json:"name" validate:"omitempty,max=100"`
	Surname     *string  `json:"surname" validate:"omitempty,max=100"`
	Gender      *int     `json:"gender" validate:"omitempty,min=0,max=2"`
	Avatar      *string  `json:"avatar" validate:"omitempty,max=50"`
	Height      *float64 `json:"height"`
	BirthOfDate *string  `json:"birthOfDate" validate:"omitempty,max=20"`
}

// Columns maps the set fields to their users table columns.
func (p UserPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Surname != nil {
		cols["surname"] = *p.Surname
	}
	if p.Gender != nil {
		cols["gender"] = *p.Gender
	}
	if p.Avatar != nil {
		cols["avatar"] = *p.Avatar
	}
	if p.Height != nil {
		cols["height"] = *p.Height
	}
	if p.BirthOfDate != nil {
		cols["birth_of_date"] = *p.BirthOfDate
	}
	return cols
}
