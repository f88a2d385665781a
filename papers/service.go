package papers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	academicreads "github.com/lgngh/AcademicReads"
	"github.com/lgngh/AcademicReads/errors"
)

// Papers are academic works, nothing in the catalog predates 1800.
const minPublishedYear = 1800

func errPaperNotFound(id int) error {
	return errors.New(fmt.Sprintf("no paper for id %d", id), errors.NotFound())
}

// PaperView is a paper as displayed: reviews embedded, aggregate
// rating recomputed on every read.
type PaperView struct {
	academicreads.Paper
	Reviews []*academicreads.Review `json:"reviews"`
	Rating  academicreads.Rating    `json:"rating"`
}

type Service struct {
	papers  academicreads.PaperStore
	reviews academicreads.ReviewStore
	index   academicreads.PaperIndex
}

func NewService(papers academicreads.PaperStore, reviews academicreads.ReviewStore, index academicreads.PaperIndex) *Service {
	return &Service{
		papers:  papers,
		reviews: reviews,
		index:   index,
	}
}

// Create catalogs a new paper owned by the calling user.
func (s *Service) Create(userID int, paper academicreads.Paper) (academicreads.Paper, error) {
	if paper.ID != 0 {
		return academicreads.Paper{}, errors.New("field id should be empty", errors.BadRequest())
	}

	if strings.TrimSpace(paper.Title) == "" {
		return academicreads.Paper{}, errors.New("title cannot be empty", errors.Validation())
	}
	if strings.TrimSpace(paper.Abstract) == "" {
		return academicreads.Paper{}, errors.New("abstract cannot be empty", errors.Validation())
	}
	if year := time.Now().Year(); paper.PublishedYear < minPublishedYear || paper.PublishedYear > year {
		return academicreads.Paper{}, errors.New(
			fmt.Sprintf("published year must be between %d and %d", minPublishedYear, year),
			errors.Validation(),
		)
	}

	paper.UserID = userID
	if err := s.papers.Upsert(&paper); err != nil {
		return academicreads.Paper{}, errors.New("could not save paper", errors.WithCause(err))
	}

	if err := s.index.Index(&paper); err != nil {
		return academicreads.Paper{}, errors.New("could not index paper", errors.WithCause(err))
	}

	return paper, nil
}

// Review attaches a rating and comment to an existing paper. A user
// may review the same paper more than once.
func (s *Service) Review(userID, paperID int, content string, rating int) (academicreads.Review, error) {
	found, err := s.papers.Get(paperID)
	if err != nil {
		return academicreads.Review{}, errors.New("could not get paper", errors.WithCause(err))
	}
	if len(found) != 1 {
		return academicreads.Review{}, errPaperNotFound(paperID)
	}

	if strings.TrimSpace(content) == "" {
		return academicreads.Review{}, errors.New("content cannot be empty", errors.Validation())
	}
	if rating < 1 || rating > 5 {
		return academicreads.Review{}, errors.New("rating must be between 1 and 5", errors.Validation())
	}

	review := academicreads.Review{
		Content: content,
		Rating:  rating,
		UserID:  userID,
		PaperID: paperID,
	}
	if err := s.reviews.Upsert(&review); err != nil {
		return academicreads.Review{}, errors.New("could not save review", errors.WithCause(err))
	}

	return review, nil
}

// Get returns a single paper with its reviews.
func (s *Service) Get(id int) (PaperView, error) {
	found, err := s.papers.Get(id)
	if err != nil {
		return PaperView{}, errors.New("could not get paper", errors.WithCause(err))
	}
	if len(found) != 1 {
		return PaperView{}, errPaperNotFound(id)
	}

	return s.view(found[0])
}

// List returns the whole catalog, most recently created first.
func (s *Service) List() ([]PaperView, error) {
	papers, err := s.papers.List()
	if err != nil {
		return nil, errors.New("could not list papers", errors.WithCause(err))
	}

	sort.Slice(papers, func(i, j int) bool {
		return papers[i].CreatedAt.After(papers[j].CreatedAt)
	})

	return s.views(papers)
}

// Search matches the query against titles, authors and abstracts. An
// empty query is the unfiltered listing.
func (s *Service) Search(q string) ([]PaperView, error) {
	if strings.TrimSpace(q) == "" {
		return s.List()
	}

	res, err := s.index.Search(academicreads.PaperSearch{Q: q})
	if err != nil {
		return nil, errors.New("could not search papers", errors.WithCause(err))
	}

	papers, err := s.papers.Get(res.IDs...)
	if err != nil {
		return nil, errors.New("could not get papers", errors.WithCause(err))
	}

	return s.views(papers)
}

func (s *Service) views(papers []*academicreads.Paper) ([]PaperView, error) {
	views := make([]PaperView, len(papers))
	for i, paper := range papers {
		view, err := s.view(paper)
		if err != nil {
			return nil, err
		}
		views[i] = view
	}
	return views, nil
}

func (s *Service) view(paper *academicreads.Paper) (PaperView, error) {
	reviews, err := s.reviews.ListByPaper(paper.ID)
	if err != nil {
		return PaperView{}, errors.New("could not get reviews", errors.WithCause(err))
	}

	return PaperView{
		Paper:   *paper,
		Reviews: reviews,
		Rating:  academicreads.AggregateRating(reviews),
	}, nil
}
