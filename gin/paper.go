package gin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	academicreads "github.com/lgngh/AcademicReads"
	"github.com/lgngh/AcademicReads/errors"
	"github.com/lgngh/AcademicReads/log"
	"github.com/lgngh/AcademicReads/papers"
)

type PaperHandler struct {
	Service       *papers.Service
	Authenticator Authenticator
	Logger        log.Logger
}

func (h *PaperHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/papers", h.List)
	router.GET("/papers/search", h.Search)
	router.GET("/papers/:id", h.Get)
	router.POST("/papers", h.Authenticator.Authenticate, h.Insert)
	router.POST("/papers/:id/reviews", h.Authenticator.Authenticate, h.InsertReview)
}

func (h *PaperHandler) List(c *gin.Context) {
	views, err := h.Service.List()
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *PaperHandler) Search(c *gin.Context) {
	views, err := h.Service.Search(c.Query("q"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": views})
}

func (h *PaperHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderError(c, errors.New("invalid paper id", errors.BadRequest(), errors.WithCause(err)))
		return
	}

	view, err := h.Service.Get(id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (h *PaperHandler) Insert(c *gin.Context) {
	user, err := userFromContext(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var paper academicreads.Paper
	if err := c.BindJSON(&paper); err != nil {
		h.renderError(c, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err)))
		return
	}

	paper, err = h.Service.Create(user.ID, paper)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": paper})
}

func (h *PaperHandler) InsertReview(c *gin.Context) {
	user, err := userFromContext(c)
	if err != nil {
		h.renderError(c, err)
		return
	}

	paperID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.renderError(c, errors.New("invalid paper id", errors.BadRequest(), errors.WithCause(err)))
		return
	}

	var body struct {
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := c.BindJSON(&body); err != nil {
		h.renderError(c, errors.New("invalid body", errors.BadRequest(), errors.WithCause(err)))
		return
	}

	review, err := h.Service.Review(user.ID, paperID, body.Content, body.Rating)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": review})
}

func (h *PaperHandler) renderError(c *gin.Context, err error) {
	if errors.Code(err) >= 500 && h.Logger != nil {
		h.Logger.Error("paper handler:", err)
	}
	abortWithError(c, err)
}
