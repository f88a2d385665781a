package inmem

import (
	"strings"
	"sync"

	academicreads "github.com/lgngh/AcademicReads"
)

// PaperIndex matches the query as a case-insensitive substring of the
// title, authors or abstract. It mirrors what the bleve index does,
// without the on-disk index.
type PaperIndex struct {
	mu     sync.Mutex
	papers map[int]*academicreads.Paper
	order  []int
}

func NewPaperIndex() *PaperIndex {
	return &PaperIndex{
		papers: make(map[int]*academicreads.Paper),
	}
}

func (s *PaperIndex) Index(paper *academicreads.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.papers[paper.ID]; !ok {
		s.order = append(s.order, paper.ID)
	}
	p := *paper
	s.papers[paper.ID] = &p
	return nil
}

func (s *PaperIndex) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.papers, id)
	for i, pid := range s.order {
		if pid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *PaperIndex) Search(search academicreads.PaperSearch) (academicreads.PaperSearchResults, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(search.Q))

	ids := make([]int, 0)
	for _, id := range s.order {
		paper := s.papers[id]
		if len(search.IDs) > 0 && !contains(search.IDs, id) {
			continue
		}

		if q == "" || matches(paper, q) {
			ids = append(ids, id)
		}
	}

	total := uint64(len(ids))
	if search.Offset > 0 {
		if search.Offset >= total {
			ids = nil
		} else {
			ids = ids[search.Offset:]
		}
	}
	if search.Limit > 0 && uint64(len(ids)) > search.Limit {
		ids = ids[:search.Limit]
	}

	return academicreads.PaperSearchResults{
		IDs: ids,
		Pagination: academicreads.Pagination{
			Total:  total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func matches(paper *academicreads.Paper, q string) bool {
	return strings.Contains(strings.ToLower(paper.Title), q) ||
		strings.Contains(strings.ToLower(paper.Authors), q) ||
		strings.Contains(strings.ToLower(paper.Abstract), q)
}

func contains(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
