package inmem

import (
	"testing"

	academicreads "github.com/lgngh/AcademicReads"
)

func TestPaperStore(t *testing.T) {
	academicreads.TestPaperStore(t, NewPaperStore())
}

func TestReviewStore(t *testing.T) {
	academicreads.TestReviewStore(t, NewReviewStore())
}

func TestPaperIndex(t *testing.T) {
	academicreads.TestPaperIndex(t, NewPaperIndex())
}
