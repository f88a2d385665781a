package gin

import (
	"strings"

	"github.com/gin-gonic/gin"

	academicreads "github.com/lgngh/AcademicReads"
	"github.com/lgngh/AcademicReads/auth"
	"github.com/lgngh/AcademicReads/errors"
)

const userKey = "user"

// Authenticator guards mutating routes: it validates the bearer token
// and stores the authenticated user in the gin context.
type Authenticator struct {
	Service *auth.UserService
}

func (a Authenticator) Authenticate(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if len(token) <= 6 || strings.ToLower(token[:7]) != "bearer " {
		abortWithError(c, errors.New("no token found", errors.Unauthorized()))
		return
	}

	user, err := a.Service.Validate(token[7:])
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Set(userKey, user)
	c.Next()
}

// userFromContext returns the user stored by the Authenticator.
func userFromContext(c *gin.Context) (academicreads.User, error) {
	u, ok := c.Get(userKey)
	if !ok {
		return academicreads.User{}, errors.New("could not extract user", errors.Unauthorized())
	}

	user, ok := u.(academicreads.User)
	if !ok {
		return academicreads.User{}, errors.New("could not retrieve user", errors.Unauthorized())
	}

	return user, nil
}

func abortWithError(c *gin.Context, err error) {
	code := errors.Code(err)
	msg := err.Error()
	if code >= 500 {
		msg = "internal error"
	}

	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}
