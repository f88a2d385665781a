package bleve

import (
	"os"
	"path/filepath"
	"testing"

	academicreads "github.com/lgngh/AcademicReads"
)

func createIndex(t *testing.T) (*PaperIndex, func()) {
	dir, err := os.MkdirTemp("", "academicreads-bleve-*")
	if err != nil {
		t.Fatal("could not create tmp dir:", err)
	}

	index := &PaperIndex{}
	if err := index.Open(filepath.Join(dir, "papers.bleve")); err != nil {
		os.RemoveAll(dir)
		t.Fatal("error creating index:", err)
	}

	return index, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log(err)
		}
	}
}

func TestPaperIndex(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	academicreads.TestPaperIndex(t, index)
}
