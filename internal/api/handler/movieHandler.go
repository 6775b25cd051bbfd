package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	svc service.MovieService
}

func NewMovieHandler(svc service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// RegisterRoutes mounts the movie endpoints; protected runs before every mutating route.
func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup, protected ...gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/search", h.Search)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/actors", h.Actors)

	rg.POST("", protect(protected, h.Create)...)
	rg.PUT("/:id", protect(protected, h.Update)...)
	rg.DELETE("/:id", protect(protected, h.Delete)...)
}

func (h *MovieHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), listTimeout*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MovieHandler) Search(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), listTimeout*time.Second)
	defer cancel()

	list, err := h.svc.Search(ctx, c.Query("query"))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	m, err := h.svc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Actors(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	list, err := h.svc.ActorsInMovie(ctx, id)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *MovieHandler) Create(c *gin.Context) {
	var in dto.CreateMovieDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	m, err := h.svc.Create(ctx, in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/movie/%d", m.ID))
	c.JSON(http.StatusCreated, m)
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in dto.UpdateMovieDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	if err := h.svc.Update(ctx, id, in); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), defaultTimeout*time.Second)
	defer cancel()

	deleted, err := h.svc.Delete(ctx, id)
	if err != nil {
		internalError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps service errors of create/update. An unknown actor referenced
// from a movie payload is a bad request, not a missing movie.
func (h *MovieHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "movie not found"})
	case errors.Is(err, service.ErrActorNotFound), isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		internalError(c, err)
	}
}
