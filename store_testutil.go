package academicreads

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The suites below define the store contracts once and are run against
// both the inmem and the bolt implementations. Timestamps are compared
// with time.Equal through assertSameTime: a round trip through the
// bolt JSON encoding drops the monotonic reading, which breaks strict
// struct equality.

// TestUserStore runs the UserStore contract against an implementation.
func TestUserStore(t *testing.T, store UserStore) {
	users := []*User{
		{
			Name:         "Pizza",
			Email:        "pizza@academicreads.net",
			PasswordHash: "$2a$12$not.a.real.hash",
		},
		{
			Name:  "Yolo",
			Email: "yolo@academicreads.net",
			// Third-party identity: no password hash.
		},
	}

	ids := make([]int, len(users))
	for i, user := range users {
		err := store.Upsert(user)
		require.NoError(t, err, "insert %s must not fail", user.Name)
		require.NotEqual(t, 0, user.ID, "id must be set by insert")
		require.False(t, user.CreatedAt.IsZero(), "createdAt must be set by insert")
		ids[i] = user.ID
	}

	sort.Ints(ids)
	for i := 0; i < len(ids)-1; i++ {
		require.NotEqual(t, ids[i], ids[i+1], "all ids must be different")
	}

	for _, expected := range users {
		user, err := store.Get(expected.ID)
		require.NoError(t, err)
		assertSameUser(t, *expected, user)
	}

	user, err := store.GetByEmail(users[0].Email)
	require.NoError(t, err)
	assertSameUser(t, *users[0], user)

	// Unknown lookups return a zero user, not an error.
	user, err = store.Get(users[1].ID + 100)
	require.NoError(t, err)
	assert.Equal(t, 0, user.ID)

	user, err = store.GetByEmail("nobody@academicreads.net")
	require.NoError(t, err)
	assert.Equal(t, 0, user.ID)

	// Update keeps the id.
	users[0].Name = "Pizza II"
	err = store.Upsert(users[0])
	require.NoError(t, err)
	user, err = store.Get(users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, user.ID)
	assert.Equal(t, "Pizza II", user.Name)

	// Another identity cannot take an existing email, a user keeping
	// its own email is not a conflict.
	dup := &User{Name: "Copycat", Email: users[0].Email}
	assert.Equal(t, ErrEmailTaken, store.Upsert(dup))
	require.NoError(t, store.Upsert(users[0]))

	// Changing an email frees the old one.
	users[0].Email = "pizza2@academicreads.net"
	require.NoError(t, store.Upsert(users[0]))
	user, err = store.GetByEmail("pizza@academicreads.net")
	require.NoError(t, err)
	assert.Equal(t, 0, user.ID)
	user, err = store.GetByEmail("pizza2@academicreads.net")
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, user.ID)

	all, err := store.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = store.Delete(users[1].ID)
	require.NoError(t, err)
	user, err = store.Get(users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, user.ID)

	// Deleting a user frees its email too.
	revived := &User{Name: "Yolo II", Email: users[1].Email}
	require.NoError(t, store.Upsert(revived))
}

// TestPaperStore runs the PaperStore contract against an implementation.
func TestPaperStore(t *testing.T, store PaperStore) {
	papers := []*Paper{
		{
			Title:         "Attention is all you need",
			Abstract:      "The dominant sequence transduction models...",
			Authors:       "Ashish Vaswani, Noam Shazeer",
			DOI:           "10.48550/arXiv.1706.03762",
			PublishedYear: 2017,
			UserID:        1,
		},
		{
			Title:         "Deep residual learning",
			Abstract:      "Deeper neural networks are more difficult to train...",
			Authors:       "Kaiming He",
			PublishedYear: 2015,
			UserID:        2,
		},
	}

	for _, paper := range papers {
		err := store.Upsert(paper)
		require.NoError(t, err)
		require.NotEqual(t, 0, paper.ID)
		require.False(t, paper.CreatedAt.IsZero())
	}
	require.NotEqual(t, papers[0].ID, papers[1].ID)

	retrieved, err := store.Get(papers[0].ID)
	require.NoError(t, err)
	require.Len(t, retrieved, 1)
	assertSamePaper(t, *papers[0], *retrieved[0])

	// Missing ids are skipped, not errors.
	retrieved, err = store.Get(papers[0].ID, papers[1].ID+100)
	require.NoError(t, err)
	assert.Len(t, retrieved, 1)

	all, err := store.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Owner is persisted as written.
	assert.Equal(t, 1, retrieved[0].UserID)

	err = store.Delete(papers[1].ID)
	require.NoError(t, err)
	retrieved, err = store.Get(papers[1].ID)
	require.NoError(t, err)
	assert.Len(t, retrieved, 0)
}

// TestReviewStore runs the ReviewStore contract against an implementation.
func TestReviewStore(t *testing.T, store ReviewStore) {
	reviews := []*Review{
		{Content: "Solid methodology", Rating: 5, UserID: 1, PaperID: 1},
		{Content: "Could not reproduce", Rating: 2, UserID: 2, PaperID: 1},
		{Content: "ok", Rating: 4, UserID: 1, PaperID: 2},
		// Same (user, paper) pair twice: repeat reviews are allowed.
		{Content: "Changed my mind", Rating: 3, UserID: 1, PaperID: 1},
	}

	for _, review := range reviews {
		err := store.Upsert(review)
		require.NoError(t, err)
		require.NotEqual(t, 0, review.ID)
	}

	retrieved, err := store.Get(reviews[0].ID)
	require.NoError(t, err)
	require.Len(t, retrieved, 1)
	assertSameReview(t, *reviews[0], *retrieved[0])

	byPaper, err := store.ListByPaper(1)
	require.NoError(t, err)
	assert.Len(t, byPaper, 3)

	byPaper, err = store.ListByPaper(2)
	require.NoError(t, err)
	assert.Len(t, byPaper, 1)

	byPaper, err = store.ListByPaper(42)
	require.NoError(t, err)
	assert.Len(t, byPaper, 0)

	err = store.Delete(reviews[1].ID)
	require.NoError(t, err)
	byPaper, err = store.ListByPaper(1)
	require.NoError(t, err)
	assert.Len(t, byPaper, 2)
}

// TestPaperIndex runs the PaperIndex contract against an implementation.
func TestPaperIndex(t *testing.T, index PaperIndex) {
	papers := []*Paper{
		{
			ID:       1,
			Title:    "Attention is all you need",
			Abstract: "The dominant sequence transduction models are based on recurrent networks",
			Authors:  "Ashish Vaswani, Noam Shazeer",
		},
		{
			ID:       2,
			Title:    "Deep residual learning for image recognition",
			Abstract: "Deeper neural networks are more difficult to train",
			Authors:  "Kaiming He, Xiangyu Zhang",
		},
	}

	for _, paper := range papers {
		require.NoError(t, index.Index(paper))
	}

	tts := map[string]struct {
		q        string
		expected []int
	}{
		"title match":            {q: "attention", expected: []int{1}},
		"title match uppercase":  {q: "ATTENTION", expected: []int{1}},
		"author match":           {q: "vaswani", expected: []int{1}},
		"abstract match":         {q: "networks", expected: []int{1, 2}},
		"no match":               {q: "quantum", expected: []int{}},
		"second paper by author": {q: "kaiming", expected: []int{2}},
	}

	for name, tt := range tts {
		res, err := index.Search(PaperSearch{Q: tt.q})
		require.NoError(t, err, name)
		ids := res.IDs
		sort.Ints(ids)
		assert.Equal(t, tt.expected, ids, name)
	}

	require.NoError(t, index.Delete(1))
	res, err := index.Search(PaperSearch{Q: "attention"})
	require.NoError(t, err)
	assert.Len(t, res.IDs, 0)

	// An unlimited search returns every match, not a default page.
	for i := 0; i < 15; i++ {
		require.NoError(t, index.Index(&Paper{
			ID:       100 + i,
			Title:    fmt.Sprintf("Spin glass theory, volume %d", i+1),
			Abstract: "Mean field models of disordered systems",
			Authors:  "Giorgio Parisi",
		}))
	}
	res, err = index.Search(PaperSearch{Q: "glass"})
	require.NoError(t, err)
	assert.Len(t, res.IDs, 15)
	assert.Equal(t, uint64(15), res.Pagination.Total)

	// An explicit limit still pages.
	res, err = index.Search(PaperSearch{Q: "glass", Limit: 5})
	require.NoError(t, err)
	assert.Len(t, res.IDs, 5)
	assert.Equal(t, uint64(15), res.Pagination.Total)
}

func assertSameUser(t *testing.T, expected, got User) {
	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, expected.Name, got.Name)
	assert.Equal(t, expected.Email, got.Email)
	assert.Equal(t, expected.PasswordHash, got.PasswordHash)
	assert.True(t, expected.CreatedAt.Equal(got.CreatedAt), "createdAt should match")
}

func assertSamePaper(t *testing.T, expected, got Paper) {
	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, expected.Title, got.Title)
	assert.Equal(t, expected.Abstract, got.Abstract)
	assert.Equal(t, expected.Authors, got.Authors)
	assert.Equal(t, expected.DOI, got.DOI)
	assert.Equal(t, expected.PublishedYear, got.PublishedYear)
	assert.Equal(t, expected.UserID, got.UserID)
	assert.True(t, expected.CreatedAt.Equal(got.CreatedAt), "createdAt should match")
}

func assertSameReview(t *testing.T, expected, got Review) {
	assert.Equal(t, expected.ID, got.ID)
	assert.Equal(t, expected.Content, got.Content)
	assert.Equal(t, expected.Rating, got.Rating)
	assert.Equal(t, expected.UserID, got.UserID)
	assert.Equal(t, expected.PaperID, got.PaperID)
	assert.True(t, expected.CreatedAt.Equal(got.CreatedAt), "createdAt should match")
}
