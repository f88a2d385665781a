package gin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lgngh/AcademicReads/crossref"
	"github.com/lgngh/AcademicReads/errors"
	"github.com/lgngh/AcademicReads/log"
)

// ResolveHandler exposes DOI metadata resolution. DOIs contain
// slashes, so the route uses a catch-all parameter.
type ResolveHandler struct {
	Resolver *crossref.Resolver
	Logger   log.Logger
}

func (h *ResolveHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/papers/doi/*doi", h.Resolve)
}

func (h *ResolveHandler) Resolve(c *gin.Context) {
	doi := strings.TrimPrefix(c.Param("doi"), "/")

	metadata, err := h.Resolver.Resolve(c.Request.Context(), doi)
	if err != nil {
		if errors.Code(err) >= 500 && h.Logger != nil {
			h.Logger.Error("resolve handler:", err)
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": metadata})
}
