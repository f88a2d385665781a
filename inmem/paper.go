package inmem

import (
	"sync"
	"time"

	academicreads "github.com/lgngh/AcademicReads"
)

type PaperStore struct {
	mu     sync.Mutex
	papers []*academicreads.Paper
	maxID  int
}

func NewPaperStore() *PaperStore {
	return &PaperStore{
		papers: make([]*academicreads.Paper, 0),
	}
}

func (s *PaperStore) Get(ids ...int) ([]*academicreads.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	papers := make([]*academicreads.Paper, 0, len(ids))
	for _, id := range ids {
		for _, paper := range s.papers {
			if paper.ID == id {
				p := *paper
				papers = append(papers, &p)
				break
			}
		}
	}

	return papers, nil
}

func (s *PaperStore) List() ([]*academicreads.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	papers := make([]*academicreads.Paper, len(s.papers))
	for i, paper := range s.papers {
		p := *paper
		papers[i] = &p
	}
	return papers, nil
}

func (s *PaperStore) Upsert(paper *academicreads.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if paper.ID == 0 {
		s.maxID++
		paper.ID = s.maxID
		paper.CreatedAt = now
	} else if paper.ID > s.maxID {
		s.maxID = paper.ID
	}
	paper.UpdatedAt = now

	for i, p := range s.papers {
		if p.ID == paper.ID {
			saved := *paper
			s.papers[i] = &saved
			return nil
		}
	}

	saved := *paper
	s.papers = append(s.papers, &saved)
	return nil
}

func (s *PaperStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, paper := range s.papers {
		if paper.ID == id {
			s.papers = append(s.papers[:i], s.papers[i+1:]...)
			return nil
		}
	}

	return nil
}
