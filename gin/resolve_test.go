package gin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lgngh/AcademicReads/auth"
	"github.com/lgngh/AcademicReads/crossref"
	"github.com/lgngh/AcademicReads/inmem"
	"github.com/lgngh/AcademicReads/jwt"
	"github.com/lgngh/AcademicReads/log"
	"github.com/lgngh/AcademicReads/papers"
)

func createHandlerWithRegistry(t *testing.T, registry http.Handler) (http.Handler, func()) {
	srv := httptest.NewServer(registry)

	encodeDecoder := jwt.NewEncodeDecoder(testJWTKey)
	authService := auth.NewUserService(
		inmem.NewUserStore(),
		auth.BcryptHasher{Cost: bcrypt.MinCost},
		encodeDecoder,
		encodeDecoder,
	)
	paperService := papers.NewService(
		inmem.NewPaperStore(),
		inmem.NewReviewStore(),
		inmem.NewPaperIndex(),
	)
	resolver := crossref.NewResolverWithBase(srv.Client(), srv.URL)

	handler, err := New(paperService, authService, resolver, testJWTKey, log.New("test"))
	require.NoError(t, err, "could not create handler")
	return handler, srv.Close
}

func TestResolveRoute(t *testing.T) {
	handler, done := createHandlerWithRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/10.1000/quantum" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": {
				"title": ["Theory of quantum error-correcting codes"],
				"author": [
					{"given": "Emanuel", "family": "Knill"},
					{"given": "Raymond", "family": "Laflamme"}
				],
				"abstract": "Quantum error correction will be necessary...",
				"created": {"date-time": "1997-01-27T00:00:00Z"}
			}
		}`))
	}))
	defer done()

	status, body := do(t, handler, "GET", "/papers/doi/10.1000/quantum", "", nil)
	require.Equal(t, http.StatusOK, status, "resolve failed: %v", body)

	metadata := body["data"].(map[string]interface{})
	assert.Equal(t, "Theory of quantum error-correcting codes", metadata["title"])
	assert.Equal(t, "Emanuel Knill, Raymond Laflamme", metadata["authors"])
	assert.Equal(t, 1997.0, metadata["publishedYear"])

	status, body = do(t, handler, "GET", "/papers/doi/10.1000/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.NotEmpty(t, body["error"])
}

func TestResolveRouteRegistryDown(t *testing.T) {
	handler, done := createHandlerWithRegistry(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer done()

	status, body := do(t, handler, "GET", "/papers/doi/10.1000/quantum", "", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotEmpty(t, body["error"])
}
