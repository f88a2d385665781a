package auth

import (
	"context"

	"github.com/go-kit/kit/endpoint"

	academicreads "github.com/lgngh/AcademicReads"
)

// publicUser is the shape of a user exposed over the wire. The
// password hash never leaves the service.
type publicUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func public(user academicreads.User) publicUser {
	return publicUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func makeRegisterEndpoint(s *UserService) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(registerRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		user, err := s.Register(req.Name, req.Email, req.Password)
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{"user": public(user)}, nil
	}
}

func makeLoginEndpoint(s *UserService) endpoint.Endpoint {
	return func(ctx context.Context, r interface{}) (interface{}, error) {
		req, ok := r.(loginRequest)
		if !ok {
			return nil, errInvalidRequest
		}

		token, err := s.Authenticate(req.Email, req.Password)
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{"token": token}, nil
	}
}

func makeMeEndpoint(s *UserService) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		callerID, err := extractUserID(ctx)
		if err != nil {
			return nil, err
		}

		user, err := s.Get(callerID)
		if err != nil {
			return nil, err
		}

		return map[string]interface{}{"user": public(user)}, nil
	}
}
