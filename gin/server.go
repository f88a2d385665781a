package gin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lgngh/AcademicReads/auth"
	"github.com/lgngh/AcademicReads/crossref"
	"github.com/lgngh/AcademicReads/log"
	"github.com/lgngh/AcademicReads/papers"
)

func New(
	paperService *papers.Service,
	authService *auth.UserService,
	resolver *crossref.Resolver,
	jwtKey []byte,
	logger log.Logger,
) (http.Handler, error) {
	router := gin.New()
	router.Use(gin.Recovery())

	// CORS
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Accept-Language, Authorization, Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
		}
		c.Next()
	})

	// Unknown route
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
	})

	// Ping
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"data": "ok"})
	})

	// Papers
	paperHandler := PaperHandler{
		Service:       paperService,
		Authenticator: Authenticator{Service: authService},
		Logger:        logger,
	}
	paperHandler.RegisterRoutes(router)

	// DOI resolution
	resolveHandler := ResolveHandler{Resolver: resolver, Logger: logger}
	resolveHandler.RegisterRoutes(router)

	// Identity endpoints are go-kit http servers, mounted on the
	// router through the Server interface.
	auth.RegisterHTTPRoutes(server{router}, authService, jwtKey)

	return router, nil
}

// server adapts the gin router to the handler registration interface
// used by the auth transport.
type server struct {
	router *gin.Engine
}

func (s server) RegisterHandler(path, method string, h http.Handler) {
	s.router.Handle(method, path, gin.WrapH(h))
}
