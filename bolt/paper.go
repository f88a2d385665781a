package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"

	academicreads "github.com/lgngh/AcademicReads"
)

var paperBucket = []byte("papers")

// PaperStore is used to store and retrieve papers from a bolt database.
type PaperStore struct {
	Driver *Driver
}

// Get retrieves the papers for the given ids. Missing ids are skipped.
func (s *PaperStore) Get(ids ...int) ([]*academicreads.Paper, error) {
	papers := make([]*academicreads.Paper, 0, len(ids))
	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		for _, id := range ids {
			data := bucket.Get(itob(id))
			if data == nil {
				continue
			}

			var paper academicreads.Paper
			if err := json.Unmarshal(data, &paper); err != nil {
				return err
			}
			papers = append(papers, &paper)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return papers, nil
}

func (s *PaperStore) List() ([]*academicreads.Paper, error) {
	var papers []*academicreads.Paper

	err := s.Driver.store.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		c := bucket.Cursor()
		for id, data := c.First(); id != nil; id, data = c.Next() {
			var paper academicreads.Paper
			if err := json.Unmarshal(data, &paper); err != nil {
				return err
			}
			papers = append(papers, &paper)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return papers, nil
}

// Upsert inserts or updates a paper in the database, depending on
// paper.ID.
func (s *PaperStore) Upsert(paper *academicreads.Paper) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)

		if paper.ID <= 0 {
			id, err := bucket.NextSequence()
			if err != nil {
				return fmt.Errorf("error incrementing id: %v", err)
			}
			paper.ID = int(id)
			paper.CreatedAt = time.Now()
		}
		paper.UpdatedAt = time.Now()

		data, err := json.Marshal(paper)
		if err != nil {
			return err
		}

		return bucket.Put(itob(paper.ID), data)
	})
}

func (s *PaperStore) Delete(id int) error {
	return s.Driver.store.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(paperBucket)
		return bucket.Delete(itob(id))
	})
}
