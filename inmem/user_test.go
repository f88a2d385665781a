package inmem

import (
	"testing"

	academicreads "github.com/lgngh/AcademicReads"
)

func TestUserStore(t *testing.T) {
	academicreads.TestUserStore(t, NewUserStore())
}
