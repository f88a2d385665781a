package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	academicreads "github.com/lgngh/AcademicReads"
)

var reviewBucket = []byte("reviews")

// ReviewStore is used to store and retrieve reviews from a bolt
// database. Reviews are small and few per paper, ListByPaper scans the
// bucket like the other listings do.
type ReviewStore struct {
	Driver *Driver
}

func (s *ReviewStore) Get(ids ...int) ([]*academicreads.Review, error) {
	reviews := make([]*academicreads.Review, 0, len(ids))
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(reviewBucket)

		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var review academicreads.Review
			if err := json.Unmarshal(data, &review); err != nil {
				return err
			}
			reviews = append(reviews, &review)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (s *ReviewStore) ListByPaper(paperID int) ([]*academicreads.Review, error) {
	reviews := make([]*academicreads.Review, 0)

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(reviewBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var review academicreads.Review
			if err := json.Unmarshal(data, &review); err != nil {
				return err
			}
			if review.PaperID == paperID {
				reviews = append(reviews, &review)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (s *ReviewStore) Upsert(review *academicreads.Review) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(reviewBucket)

		if review.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			review.ID = int(id)
			review.CreatedAt = time.Now()
		}
		review.UpdatedAt = time.Now()

		data, err := json.Marshal(review)
		if err != nil {
			return err
		}

		return bucket.Put(itob(review.ID), data)
	})
}

func (s *ReviewStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(reviewBucket)
		return bucket.Delete(itob(id))
	})
}
