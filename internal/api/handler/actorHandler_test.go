package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/handler"
	"moviehub/internal/api/models"
	"moviehub/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupActorRouter(actors *MockActorService, movies *MockMovieService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewActorHandler(actors, movies)
	h.RegisterRoutes(r.Group("/api/actor"))
	return r
}

func TestActorHandler_List(t *testing.T) {
	actors := new(MockActorService)
	r := setupActorRouter(actors, new(MockMovieService))

	t.Run("Defaults", func(t *testing.T) {
		actors.On("List", mock.Anything, 0, 0).Return([]dto.ActorResponse{{ID: 1, Name: "A"}}, int64(41), nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/actor", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "41", w.Header().Get("X-Total-Count"))
		var got []dto.ActorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 1)
	})

	t.Run("Paged", func(t *testing.T) {
		actors.On("List", mock.Anything, 3, 10).Return([]dto.ActorResponse{}, int64(0), nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/actor?page=3&page_size=10", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
	actors.AssertExpectations(t)
}

func TestActorHandler_SearchAndMovies(t *testing.T) {
	actors := new(MockActorService)
	movies := new(MockMovieService)
	r := setupActorRouter(actors, movies)

	actors.On("Search", mock.Anything, "Test").Return([]dto.ActorResponse{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()
	movies.On("MoviesByActor", mock.Anything, int64(1)).Return([]dto.MovieResponse{sampleMovie()}, nil).Once()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/actor/search?query=Test", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/actor/1/movies", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Inception")

	actors.AssertExpectations(t)
	movies.AssertExpectations(t)
}

func TestActorHandler_CRUD(t *testing.T) {
	actors := new(MockActorService)
	r := setupActorRouter(actors, new(MockMovieService))

	t.Run("Create", func(t *testing.T) {
		in := dto.CreateActorDTO{Name: "Tom Hardy"}
		actors.On("Create", mock.Anything, in).Return(&dto.ActorResponse{ID: 7, Name: "Tom Hardy"}, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/actor", jsonBody(t, in)))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":7,"name":"Tom Hardy"}`, w.Body.String())
	})

	t.Run("CreateEmptyName", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/actor", jsonBody(t, gin.H{"name": ""})))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		in := dto.UpdateActorDTO{Name: "x"}
		actors.On("Update", mock.Anything, int64(9), in).Return(nil, service.ErrActorNotFound).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/actor/9", jsonBody(t, in)))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("UpdateInvalid", func(t *testing.T) {
		in := dto.UpdateActorDTO{Name: "   "}
		actors.On("Update", mock.Anything, int64(1), in).Return(nil, models.ErrInvalidActor).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/actor/1", jsonBody(t, in)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		actors.On("Delete", mock.Anything, int64(1)).Return(&dto.ActorResponse{ID: 1, Name: "A"}, nil).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/actor/1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetNotFound", func(t *testing.T) {
		actors.On("GetByID", mock.Anything, int64(5)).Return(nil, service.ErrActorNotFound).Once()

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/actor/5", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
	actors.AssertExpectations(t)
}
