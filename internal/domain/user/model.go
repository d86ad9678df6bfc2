package user

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// User is a back-office user: the owner of contracts and leads, a reviewer
// of approvals and the recipient of approval notifications.
type User struct {
	ID             string `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Email          string `db:"email" json:"email"`
	HashedPassword string `db:"hashed_password" json:"-"`
	types.BaseModel
}

func (u *User) Validate() error {
	if u.Email == "" {
		return ierr.NewError("user email is required").
			WithHint("Please provide an email address").
			Mark(ierr.ErrValidation)
	}
	return nil
}
