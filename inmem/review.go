package inmem

import (
	"sync"
	"time"

	academicreads "github.com/lgngh/AcademicReads"
)

type ReviewStore struct {
	mu      sync.Mutex
	reviews []*academicreads.Review
	maxID   int
}

func NewReviewStore() *ReviewStore {
	return &ReviewStore{
		reviews: make([]*academicreads.Review, 0),
	}
}

func (s *ReviewStore) Get(ids ...int) ([]*academicreads.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := make([]*academicreads.Review, 0, len(ids))
	for _, id := range ids {
		for _, review := range s.reviews {
			if review.ID == id {
				r := *review
				reviews = append(reviews, &r)
				break
			}
		}
	}

	return reviews, nil
}

func (s *ReviewStore) ListByPaper(paperID int) ([]*academicreads.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reviews := make([]*academicreads.Review, 0)
	for _, review := range s.reviews {
		if review.PaperID == paperID {
			r := *review
			reviews = append(reviews, &r)
		}
	}

	return reviews, nil
}

func (s *ReviewStore) Upsert(review *academicreads.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if review.ID == 0 {
		s.maxID++
		review.ID = s.maxID
		review.CreatedAt = now
	} else if review.ID > s.maxID {
		s.maxID = review.ID
	}
	review.UpdatedAt = now

	for i, r := range s.reviews {
		if r.ID == review.ID {
			saved := *review
			s.reviews[i] = &saved
			return nil
		}
	}

	saved := *review
	s.reviews = append(s.reviews, &saved)
	return nil
}

func (s *ReviewStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, review := range s.reviews {
		if review.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}

	return nil
}
