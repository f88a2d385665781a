package academicreads

import (
	"time"

	"github.com/lgngh/AcademicReads/errors"
)

// ErrEmailTaken is returned by UserStore.Upsert when another user
// already holds the email. Uniqueness is enforced by the store, in the
// same transaction as the write.
var ErrEmailTaken = errors.New("email already exists", errors.BadRequest())

type SigningKey struct {
	Key string `json:"k"`
}

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// Empty for identities provisioned by a third-party login: such
	// users cannot authenticate with credentials.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserStore implementations return a zero-ID user, not an error, when
// no user matches. Upsert returns ErrEmailTaken when the email already
// belongs to another user.
type UserStore interface {
	Get(int) (User, error)
	GetByEmail(string) (User, error)
	Upsert(*User) error
	List() ([]User, error)
	Delete(int) error
}
