package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lgngh/AcademicReads/errors"
)

const defaultBaseURL = "https://api.crossref.org/works"

// Metadata is the paper creation shape produced from a registry
// document. Resolution is atomic: either every field is populated from
// the registry or an error is returned and nothing is.
type Metadata struct {
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Abstract      string `json:"abstract"`
	PublishedYear int    `json:"publishedYear"`
}

type Resolver struct {
	client  *http.Client
	baseURL string
}

func NewResolver() *Resolver {
	return &Resolver{
		// The registry call has a hard timeout: expiry maps to a
		// transient error the caller may retry.
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
	}
}

// NewResolverWithBase is used by the tests to point the resolver at a
// local registry.
func NewResolverWithBase(client *http.Client, baseURL string) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Resolver{client: client, baseURL: baseURL}
}

// Resolve fetches the work registered under the given DOI and
// normalizes it. A 404 (or any registry 4xx) means the identifier does
// not resolve: the caller should fall back to manual entry. Network
// failures and 5xx are transient.
func (r *Resolver) Resolve(ctx context.Context, doi string) (Metadata, error) {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return Metadata{}, errors.New("doi cannot be empty", errors.Validation())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+doi, nil)
	if err != nil {
		return Metadata{}, errors.New("could not build registry request", errors.WithCause(err))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Metadata{}, errors.New("registry unreachable", errors.Transient(), errors.WithCause(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return Metadata{}, errors.New(
			fmt.Sprintf("registry answered %d", resp.StatusCode),
			errors.Transient(),
		)
	case resp.StatusCode != http.StatusOK:
		return Metadata{}, errNoWork(doi)
	}

	var body struct {
		Message struct {
			Title  []string `json:"title"`
			Author []struct {
				Given  string `json:"given"`
				Family string `json:"family"`
			} `json:"author"`
			Abstract string `json:"abstract"`
			Created  struct {
				DateTime time.Time `json:"date-time"`
			} `json:"created"`
		} `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Metadata{}, errors.New("invalid registry document", errors.Transient(), errors.WithCause(err))
	}

	work := body.Message
	if len(work.Title) == 0 || work.Created.DateTime.IsZero() {
		// Incomplete documents cannot fill the form atomically.
		return Metadata{}, errNoWork(doi)
	}

	authors := make([]string, len(work.Author))
	for i, author := range work.Author {
		authors[i] = strings.TrimSpace(author.Given + " " + author.Family)
	}

	return Metadata{
		Title:         work.Title[0],
		Authors:       strings.Join(authors, ", "),
		Abstract:      work.Abstract,
		PublishedYear: work.Created.DateTime.Year(),
	}, nil
}

func errNoWork(doi string) error {
	return errors.New(fmt.Sprintf("no work found for doi %s", doi), errors.NotFound())
}
