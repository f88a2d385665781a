package auth

import (
	"fmt"
	"regexp"

	academicreads "github.com/lgngh/AcademicReads"
	"github.com/lgngh/AcademicReads/errors"
)

// emailRegexp only rejects obvious garbage. The address is the unique
// key of a user, not something we try to fully validate.
var emailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 6

// errInvalidCredentials is shared by every authentication failure path
// so a caller cannot tell which factor was wrong.
var errInvalidCredentials = errors.New("invalid credentials", errors.Unauthorized())

type TokenEncoder interface {
	Encode(int) (string, error)
}

type TokenDecoder interface {
	Decode(string) (int, error)
}

type PasswordHasher interface {
	Hash(string) (string, error)
	Compare(hash, raw string) error
}

type UserService struct {
	store   academicreads.UserStore
	hasher  PasswordHasher
	encoder TokenEncoder
	decoder TokenDecoder
}

func NewUserService(store academicreads.UserStore, hasher PasswordHasher, encoder TokenEncoder, decoder TokenDecoder) *UserService {
	return &UserService{
		store:   store,
		hasher:  hasher,
		encoder: encoder,
		decoder: decoder,
	}
}

// Register creates a credential-based identity. The raw password is
// hashed before the user is persisted and never stored.
func (s *UserService) Register(name, email, password string) (academicreads.User, error) {
	if name == "" {
		return academicreads.User{}, errors.New("name cannot be empty", errors.Validation())
	}
	if !emailRegexp.MatchString(email) {
		return academicreads.User{}, errors.New(fmt.Sprintf("invalid email %q", email), errors.Validation())
	}
	if len(password) < minPasswordLength {
		return academicreads.User{}, errors.New(
			fmt.Sprintf("password must be at least %d characters", minPasswordLength),
			errors.Validation(),
		)
	}

	// Cheap pre-check so an obviously taken email fails before the
	// expensive hash. The store re-checks inside its own transaction:
	// concurrent registrations racing past this point lose on Upsert.
	existing, err := s.store.GetByEmail(email)
	if err != nil {
		return academicreads.User{}, errors.New("could not check email", errors.WithCause(err))
	}
	if existing.ID != 0 {
		return academicreads.User{}, academicreads.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return academicreads.User{}, errors.New("could not hash password", errors.WithCause(err))
	}

	user := academicreads.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.store.Upsert(&user); err != nil {
		if err == academicreads.ErrEmailTaken {
			return academicreads.User{}, err
		}
		return academicreads.User{}, errors.New("could not save user", errors.WithCause(err))
	}

	return user, nil
}

// Authenticate exchanges credentials for a session token. Unknown
// email, credential-less identity and wrong password all fail with the
// same error.
func (s *UserService) Authenticate(email, password string) (string, error) {
	user, err := s.store.GetByEmail(email)
	if err != nil {
		return "", errors.New("could not get user", errors.WithCause(err))
	}

	if user.ID == 0 || user.PasswordHash == "" {
		return "", errInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", errInvalidCredentials
	}

	return s.encoder.Encode(user.ID)
}

// Validate resolves a session token to its user. Any failure is an
// authentication error: the caller should require a new login.
func (s *UserService) Validate(token string) (academicreads.User, error) {
	userID, err := s.decoder.Decode(token)
	if err != nil {
		return academicreads.User{}, errors.New("invalid token", errors.Unauthorized(), errors.WithCause(err))
	}

	user, err := s.store.Get(userID)
	if err != nil {
		return academicreads.User{}, errors.New("could not get user", errors.WithCause(err))
	}
	if user.ID == 0 {
		return academicreads.User{}, errors.New("unknown user", errors.Unauthorized())
	}

	return user, nil
}

func (s *UserService) Get(id int) (academicreads.User, error) {
	user, err := s.store.Get(id)
	if err != nil {
		return academicreads.User{}, err
	}

	if user.ID == 0 {
		return academicreads.User{}, errors.New(fmt.Sprintf("no user for id %d", id), errors.NotFound())
	}
	return user, nil
}
