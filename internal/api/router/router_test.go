package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/middleware"
	"moviehub/internal/api/repository"
	"moviehub/internal/api/service"
	"moviehub/internal/config"
	"moviehub/internal/metrics"
	"moviehub/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type RouterTestSuite struct {
	suite.Suite
	engine *gin.Engine
	seed   testutil.Seed
	token  string
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(s.T())
	s.seed = testutil.SeedDatabase(s.T(), db)

	sqlDB, err := db.DB()
	s.Require().NoError(err)

	cfg := &config.Config{JWTSecret: testSecret, JWTExpiry: time.Minute}
	s.engine = New(Deps{
		Movies:      service.NewMovieService(repository.NewMovieRepo(db), nil),
		Actors:      service.NewActorService(repository.NewActorRepo(db), nil),
		Auth:        service.NewAuthService(cfg),
		DB:          sqlDB,
		CORSOrigins: []string{"*"},
		Metrics:     metrics.New(),
		Limiter:     middleware.NewRateLimiter(1000, 1000),
	})

	w := s.do(http.MethodPost, "/api/auth/login", nil, false)
	s.Require().Equal(http.StatusOK, w.Code)
	var auth dto.AuthResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &auth))
	s.token = auth.Token
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) do(method, path string, body any, withToken bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) TestHealthAndMetrics() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/check-conn", nil, false).Code)

	w := s.do(http.MethodGet, "/metrics", nil, false)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "moviehub_http_requests_total")
}

func (s *RouterTestSuite) TestRequestIDEchoed() {
	w := s.do(http.MethodGet, "/api/movie", nil, false)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RouterTestSuite) TestMutationsRequireToken() {
	w := s.do(http.MethodPost, "/api/movie", gin.H{"title": "x", "year": 2000}, false)
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/actor/%d", s.seed.Actors[0].ID), nil, false)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestMutationsRequireUserRole() {
	claims := service.Claims{
		Role: "Guest",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "moviehub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)
	s.token = signed

	w := s.do(http.MethodPost, "/api/actor", gin.H{"name": "Guest Star"}, true)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/actor/search?query=Guest", nil, false)
	s.Equal("[]", w.Body.String())
}

func (s *RouterTestSuite) TestMovieLifecycle() {
	// create with one existing and one new actor
	w := s.do(http.MethodPost, "/api/movie", gin.H{
		"title":   "Inception",
		"year":    2010,
		"actors":  []gin.H{{"id": s.seed.Actors[2].ID}, {"name": "Elliot Page"}},
		"ratings": []gin.H{{"rating": 9, "review": "dream within a dream"}},
	}, true)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created dto.MovieResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Len(created.Actors, 2)
	s.Len(created.Ratings, 1)
	s.Equal(fmt.Sprintf("/api/movie/%d", created.ID), w.Header().Get("Location"))

	// drop the new actor and the rating, rename
	w = s.do(http.MethodPut, fmt.Sprintf("/api/movie/%d", created.ID), gin.H{
		"title":  "Inception (2010)",
		"year":   2010,
		"actors": []gin.H{{"id": s.seed.Actors[2].ID}},
	}, true)
	s.Require().Equal(http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/api/movie/%d", created.ID), nil, false)
	s.Require().Equal(http.StatusOK, w.Code)
	var updated dto.MovieResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.Equal("Inception (2010)", updated.Title)
	s.Len(updated.Actors, 1)
	s.Empty(updated.Ratings)

	// the detached actor can still be found
	w = s.do(http.MethodGet, "/api/actor/search?query=Elliot", nil, false)
	s.Contains(w.Body.String(), "Elliot Page")

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/movie/%d", created.ID), nil, true)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/movie/%d", created.ID), nil, true)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestInvalidUpdateReturns400() {
	w := s.do(http.MethodPut, fmt.Sprintf("/api/movie/%d", s.seed.Movie.ID), gin.H{
		"title": "Test Movie",
		"year":  1500,
	}, true)
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/movie/%d/actors", s.seed.Movie.ID), nil, false)
	var actors []dto.ActorResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &actors))
	s.Len(actors, 2, "rolled back")
}

func (s *RouterTestSuite) TestActorMovies() {
	w := s.do(http.MethodGet, fmt.Sprintf("/api/actor/%d/movies", s.seed.Actors[0].ID), nil, false)
	s.Require().Equal(http.StatusOK, w.Code)
	var movies []dto.MovieResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &movies))
	s.Len(movies, 2)
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)

	some := corsConfig([]string{"http://a.test"})
	require.False(t, some.AllowAllOrigins)
	assert.Equal(t, []string{"http://a.test"}, some.AllowOrigins)
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	engine := New(Deps{
		Movies:  service.NewMovieService(repository.NewMovieRepo(db), nil),
		Actors:  service.NewActorService(repository.NewActorRepo(db), nil),
		Auth:    service.NewAuthService(&config.Config{JWTSecret: testSecret, JWTExpiry: time.Minute}),
		DB:      sqlDB,
		Limiter: middleware.NewRateLimiter(0.001, 1),
	})

	var codes []int
	for i := 1; i <= 5; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/movie/1", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{401, 429, 429, 429, 429}, codes)
}

func TestTrustedProxyForwardsClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	engine := New(Deps{
		Movies:         service.NewMovieService(repository.NewMovieRepo(db), nil),
		Actors:         service.NewActorService(repository.NewActorRepo(db), nil),
		Auth:           service.NewAuthService(&config.Config{JWTSecret: testSecret, JWTExpiry: time.Minute}),
		DB:             sqlDB,
		TrustedProxies: []string{"192.0.2.1"},
		Limiter:        middleware.NewRateLimiter(0.001, 1),
	})

	// behind a trusted proxy every forwarded client gets its own bucket
	for i := 1; i <= 3; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/api/movie/1", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}
