package bleve

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	academicreads "github.com/lgngh/AcademicReads"
)

// PaperIndex indexes papers in bleve. Search matches each word of the
// query against the title, the authors and the abstract.
type PaperIndex struct {
	index bleve.Index
}

// Open opens the index at path, creating it if it does not exist yet.
func (s *PaperIndex) Open(path string) error {
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, paperMapping())
	}
	if err != nil {
		return err
	}

	s.index = index
	return nil
}

func (s *PaperIndex) Close() error {
	if s.index == nil {
		return nil
	}

	return s.index.Close()
}

func (s *PaperIndex) Index(paper *academicreads.Paper) error {
	data := map[string]interface{}{
		"title":    paper.Title,
		"abstract": paper.Abstract,
		"authors":  paper.Authors,
	}

	return s.index.Index(strconv.Itoa(paper.ID), data)
}

func (s *PaperIndex) Delete(id int) error {
	return s.index.Delete(strconv.Itoa(id))
}

func (s *PaperIndex) Search(search academicreads.PaperSearch) (academicreads.PaperSearchResults, error) {
	q := andQ(
		query.NewMatchAllQuery(),
		s.searchText(search.Q),
		s.searchIDs(search.IDs),
	)

	searchRequest := bleve.NewSearchRequest(q)
	searchRequest.SortBy([]string{"_id"})

	if search.Limit > 0 {
		searchRequest.Size = int(search.Limit)
	} else {
		// bleve caps hits at 10 by default: an unlimited search is
		// sized to the whole index.
		count, err := s.index.DocCount()
		if err != nil {
			return academicreads.PaperSearchResults{}, err
		}
		searchRequest.Size = int(count)
	}
	searchRequest.From = int(search.Offset)

	searchResults, err := s.index.Search(searchRequest)
	if err != nil {
		return academicreads.PaperSearchResults{}, err
	}

	ids := make([]int, len(searchResults.Hits))
	for i, hit := range searchResults.Hits {
		ids[i], err = strconv.Atoi(hit.ID)
		if err != nil {
			return academicreads.PaperSearchResults{}, err
		}
	}

	return academicreads.PaperSearchResults{
		IDs: ids,
		Pagination: academicreads.Pagination{
			Total:  searchResults.Total,
			Limit:  search.Limit,
			Offset: search.Offset,
		},
	}, nil
}

func paperMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = en.AnalyzerName

	authors := bleve.NewTextFieldMapping()
	authors.Analyzer = simple.Name

	paper := bleve.NewDocumentMapping()
	paper.AddFieldMappingsAt("title", text)
	paper.AddFieldMappingsAt("abstract", text)
	paper.AddFieldMappingsAt("authors", authors)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = paper
	return m
}

func andQ(qs ...query.Query) query.Query {
	ands := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ands = append(ands, q)
		}
	}

	if len(ands) == 0 {
		return nil
	}
	return query.NewConjunctionQuery(ands)
}

func orQ(qs ...query.Query) query.Query {
	ors := make([]query.Query, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			ors = append(ors, q)
		}
	}

	if len(ors) == 0 {
		return nil
	}
	return query.NewDisjunctionQuery(ors)
}

// searchText requires every word of the query to match at least one of
// the indexed fields.
func (s *PaperIndex) searchText(queryString string) query.Query {
	words := strings.Fields(queryString)

	ands := make([]query.Query, 0, len(words))
	for _, word := range words {
		ands = append(ands, orQ(
			s.searchField(word, "title", en.AnalyzerName),
			s.searchField(word, "abstract", en.AnalyzerName),
			s.searchField(word, "authors", simple.Name),
		))
	}

	return andQ(ands...)
}

func (s *PaperIndex) searchField(queryString, field, analyzerName string) query.Query {
	analyzer := s.index.Mapping().AnalyzerNamed(analyzerName)
	tokens := analyzer.Analyze([]byte(queryString))
	if len(tokens) == 0 {
		return nil
	}

	conjuncs := make([]query.Query, len(tokens))
	for i, token := range tokens {
		prefix := query.NewPrefixQuery(string(token.Term))
		prefix.SetField(field)
		conjuncs[i] = prefix
	}

	return query.NewConjunctionQuery(conjuncs)
}

func (*PaperIndex) searchIDs(ids []int) query.Query {
	if len(ids) == 0 {
		return nil
	}

	docIDs := make([]string, len(ids))
	for i, id := range ids {
		docIDs[i] = strconv.Itoa(id)
	}
	return query.NewDocIDQuery(docIDs)
}
