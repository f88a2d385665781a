package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	academicreads "github.com/lgngh/AcademicReads"
)

var (
	userBucket = []byte("users")
	// userEmailBucket maps email to user id. It is written in the same
	// transaction as the user record, which makes the email uniqueness
	// check race-free.
	userEmailBucket = []byte("user_emails")
)

// UserStore is used to store and retrieve users from a bolt database.
// The password hash is excluded from the public JSON shape, so users
// are stored under a private encoding.
type UserStore struct {
	Driver *Driver
}

type storedUser struct {
	academicreads.User
	PasswordHash string `json:"passwordHash"`
}

func (s *UserStore) Get(id int) (academicreads.User, error) {
	var user academicreads.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		return unmarshalUser(data, &user)
	})
	if err != nil {
		return academicreads.User{}, err
	}

	return user, nil
}

func (s *UserStore) GetByEmail(email string) (academicreads.User, error) {
	var user academicreads.User
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(userEmailBucket).Get([]byte(email))
		if id == nil {
			return nil
		}

		data := tx.Bucket(userBucket).Get(id)
		if data == nil {
			return nil
		}
		return unmarshalUser(data, &user)
	})
	if err != nil {
		return academicreads.User{}, err
	}

	return user, nil
}

func (s *UserStore) List() ([]academicreads.User, error) {
	var users []academicreads.User

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var user academicreads.User
			if err := unmarshalUser(data, &user); err != nil {
				return err
			}
			users = append(users, user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (s *UserStore) Upsert(user *academicreads.User) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)
		emails := tx.Bucket(userEmailBucket)

		if owner := emails.Get([]byte(user.Email)); owner != nil && btoi(owner) != user.ID {
			return academicreads.ErrEmailTaken
		}

		if user.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			user.ID = int(id)
			user.CreatedAt = time.Now()
		} else if prev := bucket.Get(itob(user.ID)); prev != nil {
			// An update may change the email: free the old one.
			var old academicreads.User
			if err := unmarshalUser(prev, &old); err != nil {
				return err
			}
			if old.Email != user.Email {
				if err := emails.Delete([]byte(old.Email)); err != nil {
					return err
				}
			}
		}
		user.UpdatedAt = time.Now()

		data, err := marshalUser(user)
		if err != nil {
			return err
		}

		if err := emails.Put([]byte(user.Email), itob(user.ID)); err != nil {
			return err
		}
		return bucket.Put(itob(user.ID), data)
	})
}

func (s *UserStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(userBucket)

		data := bucket.Get(itob(id))
		if data == nil {
			return nil
		}

		var user academicreads.User
		if err := unmarshalUser(data, &user); err != nil {
			return err
		}
		if err := tx.Bucket(userEmailBucket).Delete([]byte(user.Email)); err != nil {
			return err
		}
		return bucket.Delete(itob(id))
	})
}

func marshalUser(user *academicreads.User) ([]byte, error) {
	return json.Marshal(storedUser{
		User:         *user,
		PasswordHash: user.PasswordHash,
	})
}

func unmarshalUser(data []byte, user *academicreads.User) error {
	var stored storedUser
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}

	*user = stored.User
	user.PasswordHash = stored.PasswordHash
	return nil
}
