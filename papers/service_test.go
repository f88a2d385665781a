package papers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	academicreads "github.com/lgngh/AcademicReads"
	"github.com/lgngh/AcademicReads/errors"
	"github.com/lgngh/AcademicReads/inmem"
)

func newTestService() *Service {
	return NewService(inmem.NewPaperStore(), inmem.NewReviewStore(), inmem.NewPaperIndex())
}

func validPaper() academicreads.Paper {
	return academicreads.Paper{
		Title:         "Attention is all you need",
		Abstract:      "The dominant sequence transduction models...",
		Authors:       "Ashish Vaswani, Noam Shazeer",
		PublishedYear: 2017,
	}
}

func TestService_Create(t *testing.T) {
	service := newTestService()

	paper, err := service.Create(7, validPaper())
	require.NoError(t, err)
	assert.NotEqual(t, 0, paper.ID)
	assert.Equal(t, 7, paper.UserID, "caller becomes the owner")

	// The paper is searchable right away.
	views, err := service.Search("attention")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, paper.ID, views[0].ID)
}

func TestService_Create_Validation(t *testing.T) {
	service := newTestService()

	tts := map[string]func(*academicreads.Paper){
		"empty title":        func(p *academicreads.Paper) { p.Title = "" },
		"blank title":        func(p *academicreads.Paper) { p.Title = "   " },
		"empty abstract":     func(p *academicreads.Paper) { p.Abstract = "" },
		"year before 1800":   func(p *academicreads.Paper) { p.PublishedYear = 1799 },
		"year in the future": func(p *academicreads.Paper) { p.PublishedYear = time.Now().Year() + 1 },
		"zero year":          func(p *academicreads.Paper) { p.PublishedYear = 0 },
	}

	for name, mutate := range tts {
		t.Run(name, func(t *testing.T) {
			paper := validPaper()
			mutate(&paper)
			_, err := service.Create(7, paper)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err), "expected a validation error")
		})
	}

	t.Run("id already set", func(t *testing.T) {
		paper := validPaper()
		paper.ID = 12
		_, err := service.Create(7, paper)
		require.Error(t, err)
		errors.AssertCode(t, err, 400)
	})
}

func TestService_Review(t *testing.T) {
	service := newTestService()

	paper, err := service.Create(7, validPaper())
	require.NoError(t, err)

	review, err := service.Review(8, paper.ID, "ok", 4)
	require.NoError(t, err)
	assert.NotEqual(t, 0, review.ID)
	assert.Equal(t, 8, review.UserID)
	assert.Equal(t, paper.ID, review.PaperID)

	view, err := service.Get(paper.ID)
	require.NoError(t, err)
	require.Len(t, view.Reviews, 1)
	assert.Equal(t, academicreads.Rating{HasReviews: true, Average: 4, Count: 1}, view.Rating)

	// Same user can review the same paper again.
	_, err = service.Review(8, paper.ID, "changed my mind", 2)
	require.NoError(t, err)
	view, err = service.Get(paper.ID)
	require.NoError(t, err)
	assert.Equal(t, academicreads.Rating{HasReviews: true, Average: 3, Count: 2}, view.Rating)
}

func TestService_Review_Errors(t *testing.T) {
	service := newTestService()

	paper, err := service.Create(7, validPaper())
	require.NoError(t, err)

	_, err = service.Review(8, paper.ID+100, "ok", 4)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	tts := map[string]struct {
		content string
		rating  int
	}{
		"empty content": {content: "", rating: 4},
		"rating 0":      {content: "ok", rating: 0},
		"rating 6":      {content: "ok", rating: 6},
		"negative":      {content: "ok", rating: -1},
	}
	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			_, err := service.Review(8, paper.ID, tt.content, tt.rating)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
		})
	}

	// A rejected review never touches the paper's aggregate.
	view, err := service.Get(paper.ID)
	require.NoError(t, err)
	assert.Equal(t, academicreads.Rating{HasReviews: false}, view.Rating)
}

func TestService_List_Order(t *testing.T) {
	store := inmem.NewPaperStore()
	service := NewService(store, inmem.NewReviewStore(), inmem.NewPaperIndex())

	// Seed through the store to control creation times.
	old := academicreads.Paper{Title: "Old", Abstract: "a", PublishedYear: 2001}
	require.NoError(t, store.Upsert(&old))
	recent := academicreads.Paper{Title: "Recent", Abstract: "a", PublishedYear: 2002}
	require.NoError(t, store.Upsert(&recent))
	recent.CreatedAt = old.CreatedAt.Add(time.Hour)
	require.NoError(t, store.Upsert(&recent))

	views, err := service.List()
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Recent", views[0].Title, "most recent first")
	assert.Equal(t, "Old", views[1].Title)
	assert.Equal(t, academicreads.Rating{HasReviews: false}, views[0].Rating)
}

func TestService_Search_EmptyQueryLists(t *testing.T) {
	service := newTestService()

	_, err := service.Create(7, validPaper())
	require.NoError(t, err)

	views, err := service.Search("   ")
	require.NoError(t, err)
	assert.Len(t, views, 1)

	views, err = service.Search("no such paper anywhere")
	require.NoError(t, err)
	assert.Len(t, views, 0)
}
