package academicreads

import (
	"time"
)

type Paper struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Authors  string `json:"authors"`

	// External ids
	DOI string `json:"doi,omitempty"`

	PublishedYear int `json:"publishedYear"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Owner. Set at creation, never reassigned.
	UserID int `json:"userId"`
}

type Review struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID  int `json:"userId"`
	PaperID int `json:"paperId"`
}

type Pagination struct {
	Total  uint64 `json:"total"`
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type PaperSearch struct {
	IDs []int  `json:"ids"`
	Q   string `json:"q"`

	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset"`
}

type PaperSearchResults struct {
	IDs        []int
	Pagination Pagination
}

type PaperStore interface {
	Get(...int) ([]*Paper, error)
	List() ([]*Paper, error)
	Upsert(*Paper) error
	Delete(int) error
}

type ReviewStore interface {
	Get(...int) ([]*Review, error)
	ListByPaper(int) ([]*Review, error)
	Upsert(*Review) error
	Delete(int) error
}

type PaperIndex interface {
	Index(*Paper) error
	Search(PaperSearch) (PaperSearchResults, error)
	Delete(int) error
}
