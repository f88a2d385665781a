package bolt

import (
	"os"
	"testing"

	academicreads "github.com/lgngh/AcademicReads"
)

func createDriver(t *testing.T) (*Driver, func()) {
	tmpFile, err := os.CreateTemp("", "academicreads-bolt-*")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	tmpFile.Close()

	driver := &Driver{}
	if err := driver.Open(filename); err != nil {
		os.Remove(filename)
		t.Fatalf("could not open bolt on file %s: %v", filename, err)
	}

	return driver, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestUserStore(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	academicreads.TestUserStore(t, &UserStore{Driver: driver})
}

func TestPaperStore(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	academicreads.TestPaperStore(t, &PaperStore{Driver: driver})
}

func TestReviewStore(t *testing.T) {
	driver, f := createDriver(t)
	defer f()

	academicreads.TestReviewStore(t, &ReviewStore{Driver: driver})
}
