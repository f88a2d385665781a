package inmem

import (
	"sync"
	"time"

	academicreads "github.com/lgngh/AcademicReads"
)

type UserStore struct {
	mu    sync.Mutex
	users []academicreads.User
	maxID int
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make([]academicreads.User, 0),
	}
}

func (s *UserStore) Get(id int) (academicreads.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}

	return academicreads.User{}, nil
}

func (s *UserStore) GetByEmail(email string) (academicreads.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}

	return academicreads.User{}, nil
}

func (s *UserStore) List() ([]academicreads.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]academicreads.User, len(s.users))
	copy(users, s.users)
	return users, nil
}

func (s *UserStore) Upsert(user *academicreads.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email && u.ID != user.ID {
			return academicreads.ErrEmailTaken
		}
	}

	now := time.Now()
	if user.ID == 0 {
		s.maxID++
		user.ID = s.maxID
		user.CreatedAt = now
	} else if user.ID > s.maxID {
		s.maxID = user.ID
	}
	user.UpdatedAt = now

	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}

	s.users = append(s.users, *user)
	return nil
}

func (s *UserStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, user := range s.users {
		if user.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}

	return nil
}
