package crossref

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgngh/AcademicReads/errors"
)

const workDocument = `{
	"status": "ok",
	"message-type": "work",
	"message": {
		"DOI": "10.1038/nphys1170",
		"title": ["Quantum computing"],
		"author": [
			{"given": "Emanuel", "family": "Knill"},
			{"given": "Raymond", "family": "Laflamme"}
		],
		"abstract": "Quantum computers promise to exceed...",
		"created": {"date-time": "2008-12-02T09:31:43Z"}
	}
}`

func newTestResolver(handler http.HandlerFunc) (*Resolver, func()) {
	srv := httptest.NewServer(handler)
	return NewResolverWithBase(srv.Client(), srv.URL), srv.Close
}

func TestResolver_Resolve(t *testing.T) {
	var gotPath string
	resolver, done := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(workDocument))
	})
	defer done()

	md, err := resolver.Resolve(context.Background(), "10.1038/nphys1170")
	require.NoError(t, err)

	assert.Equal(t, "/10.1038/nphys1170", gotPath)
	assert.Equal(t, Metadata{
		Title:         "Quantum computing",
		Authors:       "Emanuel Knill, Raymond Laflamme",
		Abstract:      "Quantum computers promise to exceed...",
		PublishedYear: 2008,
	}, md)

	// Resolving twice returns identical metadata.
	again, err := resolver.Resolve(context.Background(), "10.1038/nphys1170")
	require.NoError(t, err)
	assert.Equal(t, md, again)
}

func TestResolver_Resolve_MissingAbstract(t *testing.T) {
	resolver, done := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {
			"title": ["No abstract here"],
			"author": [{"given": "Ada", "family": "Lovelace"}],
			"created": {"date-time": "1843-09-01T00:00:00Z"}
		}}`))
	})
	defer done()

	md, err := resolver.Resolve(context.Background(), "10.0000/none")
	require.NoError(t, err)
	assert.Equal(t, "", md.Abstract, "abstract is empty, never null")
	assert.Equal(t, 1843, md.PublishedYear)
}

func TestResolver_Resolve_NotFound(t *testing.T) {
	resolver, done := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Resource not found.", http.StatusNotFound)
	})
	defer done()

	_, err := resolver.Resolve(context.Background(), "10.0000/nope")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "unresolved doi is a not-found, not a fault")
	assert.False(t, errors.IsTransient(err))
}

func TestResolver_Resolve_Transient(t *testing.T) {
	resolver, done := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusServiceUnavailable)
	})
	defer done()

	_, err := resolver.Resolve(context.Background(), "10.0000/boom")
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err), "5xx is retryable")
	assert.False(t, errors.IsNotFound(err))
}

func TestResolver_Resolve_NetworkError(t *testing.T) {
	resolver, done := newTestResolver(func(w http.ResponseWriter, r *http.Request) {})
	// Shut the server down before calling.
	done()

	_, err := resolver.Resolve(context.Background(), "10.0000/gone")
	require.Error(t, err)
	assert.True(t, errors.IsTransient(err))
}

func TestResolver_Resolve_IncompleteDocument(t *testing.T) {
	resolver, done := newTestResolver(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": {"title": []}}`))
	})
	defer done()

	_, err := resolver.Resolve(context.Background(), "10.0000/empty")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "a document that cannot fill the form falls back to manual entry")
}

func TestResolver_Resolve_EmptyDOI(t *testing.T) {
	resolver := NewResolver()

	_, err := resolver.Resolve(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
