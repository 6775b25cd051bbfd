package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ActorHandler struct {
	svc    service.ActorService
	movies service.MovieService
}

func NewActorHandler(svc service.ActorService, movies service.MovieService) *ActorHandler {
	return &ActorHandler{svc: svc, movies: movies}
}

func (h *ActorHandler) RegisterRoutes(rg *gin.RouterGroup, protected ...gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/movies", h.Movies)

	rg.POST("", protect(protected, h.Create)...)
	rg.PUT("/:id", protect(protected, h.Update)...)
	rg.DELETE("/:id", protect(protected, h.Delete)...)
}

func (h *ActorHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), listTimeout*time.Second)
	defer cancel()

	// invalid values fall back to the service defaults
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	list, total, err := h.svc.List(ctx, page, pageSize)
	if err != nil {
		internalError(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, list)
}

func (h *ActorHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), listTimeout*time.Second)
	defer cancel()

	list, err := h.svc.Search(ctx, c.Query("query"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ActorHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	a, err := h.svc.GetByID(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ActorHandler) Movies(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	list, err := h.movies.MoviesByActor(ctx, id)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ActorHandler) Create(c *gin.Context) {
	var in dto.CreateActorDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	a, err := h.svc.Create(ctx, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *ActorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateActorDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	a, err := h.svc.Update(ctx, id, in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ActorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	a, err := h.svc.Delete(ctx, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ActorHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "actor not found"})
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, err)
	}
}
