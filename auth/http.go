package auth

import (
	"context"
	"encoding/json"
	"net/http"

	kitjwt "github.com/go-kit/kit/auth/jwt"
	kithttp "github.com/go-kit/kit/transport/http"

	"github.com/lgngh/AcademicReads/errors"
	"github.com/lgngh/AcademicReads/jwt"
)

var errInvalidRequest = errors.New("invalid request", errors.BadRequest())

// Server defines the interface to register the http handlers.
type Server interface {
	RegisterHandler(path, method string, f http.Handler)
}

// RegisterHTTPRoutes mounts the identity endpoints:
// register a user, exchange credentials for a session token,
// get the authenticated user.
func RegisterHTTPRoutes(srv Server, service *UserService, jwtKey []byte) {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(encodeError),
		kithttp.ServerBefore(kitjwt.HTTPToContext()),
	}

	authenticationMiddleware := jwt.Middleware(jwtKey)

	registerHandler := kithttp.NewServer(
		makeRegisterEndpoint(service),
		decodeRegisterRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/register", "POST", registerHandler)

	loginHandler := kithttp.NewServer(
		makeLoginEndpoint(service),
		decodeLoginRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/login", "POST", loginHandler)

	meHandler := kithttp.NewServer(
		authenticationMiddleware(makeMeEndpoint(service)),
		decodeMeRequest,
		kithttp.EncodeJSONResponse,
		opts...,
	)
	srv.RegisterHandler("/auth/me", "GET", meHandler)
}

func decodeRegisterRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	return req, nil
}

func decodeLoginRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err))
	}

	return req, nil
}

func decodeMeRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	defer r.Body.Close()
	return nil, nil
}

// extractUserID returns the user id present in the context, or an
// error if there is no user id or the claims are not correct.
func extractUserID(ctx context.Context) (int, error) {
	claims := ctx.Value(kitjwt.JWTClaimsContextKey)
	if claims == nil {
		return 0, errors.New("no user", errors.Unauthorized())
	}

	arClaims, ok := claims.(*jwt.Claims)
	if !ok {
		return 0, errors.New("invalid claims", errors.Unauthorized())
	}

	return arClaims.UserID, nil
}

// encodeError writes an error as an HTTP response. It handles the
// status code contained in the error.
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	statusCode := errors.DefaultCode
	msg := "internal error"
	if err, ok := err.(errors.Error); ok {
		statusCode = err.Code()
		if statusCode < http.StatusInternalServerError {
			msg = err.Message()
		}
	}
	if err == kitjwt.ErrTokenContextMissing || err == kitjwt.ErrTokenInvalid || err == kitjwt.ErrTokenExpired {
		statusCode = http.StatusUnauthorized
		msg = err.Error()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	})
}
