package gin

import (
	"bytes"
	"encoding/json"
	"fmt"
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

var testJWTKey = []byte("the-key-used-in-tests")

func createHandler(t *testing.T) http.Handler {
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

	handler, err := New(paperService, authService, crossref.NewResolver(), testJWTKey, log.New("test"))
	require.NoError(t, err, "could not create handler")
	return handler
}

func do(t *testing.T, handler http.Handler, method, path, token string, body interface{}) (int, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded), "invalid response body: %s", w.Body.String())
	}
	return w.Code, decoded
}

func login(t *testing.T, handler http.Handler, email string) string {
	status, body := do(t, handler, "POST", "/auth/register", "", map[string]string{
		"name":     "Reader",
		"email":    email,
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, status, "register failed: %v", body)

	status, body = do(t, handler, "POST", "/auth/login", "", map[string]string{
		"email":    email,
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusOK, status, "login failed: %v", body)

	token, ok := body["token"].(string)
	require.True(t, ok, "no token in login response: %v", body)
	return token
}

func TestPaperLifecycle(t *testing.T) {
	handler := createHandler(t)
	token := login(t, handler, "reader@univ.edu")

	// Catalog a paper.
	status, body := do(t, handler, "POST", "/papers", token, map[string]interface{}{
		"title":         "Attention Is All You Need",
		"abstract":      "The dominant sequence transduction models...",
		"authors":       "Ashish Vaswani",
		"publishedYear": 2017,
	})
	require.Equal(t, http.StatusOK, status, "create failed: %v", body)
	paper := body["data"].(map[string]interface{})
	paperID := int(paper["id"].(float64))
	assert.NotZero(t, paperID)

	// It shows up in the listing, unreviewed.
	status, body = do(t, handler, "GET", "/papers", "", nil)
	require.Equal(t, http.StatusOK, status)
	views := body["data"].([]interface{})
	require.Len(t, views, 1)
	view := views[0].(map[string]interface{})
	assert.Equal(t, "Attention Is All You Need", view["title"])
	rating := view["rating"].(map[string]interface{})
	assert.Equal(t, false, rating["hasReviews"])

	// Review it.
	status, body = do(t, handler, "POST", fmt.Sprintf("/papers/%d/reviews", paperID), token, map[string]interface{}{
		"content": "Changed the field.",
		"rating":  4,
	})
	require.Equal(t, http.StatusOK, status, "review failed: %v", body)

	// The aggregate rating reflects the review.
	status, body = do(t, handler, "GET", fmt.Sprintf("/papers/%d", paperID), "", nil)
	require.Equal(t, http.StatusOK, status)
	view = body["data"].(map[string]interface{})
	rating = view["rating"].(map[string]interface{})
	assert.Equal(t, true, rating["hasReviews"])
	assert.Equal(t, 4.0, rating["average"])
	assert.Equal(t, 1.0, rating["count"])
}

func TestPaperSearchRoute(t *testing.T) {
	handler := createHandler(t)
	token := login(t, handler, "searcher@univ.edu")

	for _, title := range []string{"Deep Residual Learning", "Quantum Error Correction"} {
		status, body := do(t, handler, "POST", "/papers", token, map[string]interface{}{
			"title":         title,
			"abstract":      "An abstract.",
			"publishedYear": 2016,
		})
		require.Equal(t, http.StatusOK, status, "create failed: %v", body)
	}

	status, body := do(t, handler, "GET", "/papers/search?q=quantum", "", nil)
	require.Equal(t, http.StatusOK, status)
	views := body["data"].([]interface{})
	require.Len(t, views, 1)
	assert.Equal(t, "Quantum Error Correction", views[0].(map[string]interface{})["title"])

	// Blank query falls back to the full listing.
	status, body = do(t, handler, "GET", "/papers/search", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 2)
}

func TestPaperRoutesRequireAuth(t *testing.T) {
	handler := createHandler(t)

	status, body := do(t, handler, "POST", "/papers", "", map[string]interface{}{
		"title": "No token", "abstract": "x", "publishedYear": 2020,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["error"])

	status, _ = do(t, handler, "POST", "/papers/1/reviews", "not-a-token", map[string]interface{}{
		"content": "x", "rating": 3,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPaperRouteErrors(t *testing.T) {
	handler := createHandler(t)
	token := login(t, handler, "errors@univ.edu")

	// Validation failure surfaces as 422.
	status, body := do(t, handler, "POST", "/papers", token, map[string]interface{}{
		"title": "", "abstract": "x", "publishedYear": 2020,
	})
	assert.Equal(t, 422, status)
	assert.NotEmpty(t, body["error"])

	// Reviewing an unknown paper is a 404.
	status, _ = do(t, handler, "POST", "/papers/42/reviews", token, map[string]interface{}{
		"content": "good", "rating": 5,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = do(t, handler, "GET", "/papers/42", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
