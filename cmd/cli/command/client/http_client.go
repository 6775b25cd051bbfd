package client

// http_client.go = handles HTTP calls from the moviehub CLI to the API server.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moviehub/internal/api/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// ActorPage is one page of GET /api/actor plus the X-Total-Count header.
type ActorPage struct {
	Actors []dto.ActorResponse
	Total  int64
}

// constructor for HTTP client. apiURL is the server root, e.g. http://localhost:8080
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// set token for HTTP client
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends one request and decodes a JSON answer into out when out is non-nil.
func (c *HTTPClient) do(method, path string, body, out any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(response.Body).Decode(&e)
		return response, &APIError{StatusCode: response.StatusCode, Message: e.Error}
	}

	if out != nil && response.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			return response, fmt.Errorf("decode response: %w", err)
		}
	}
	return response, nil
}

// Login exchanges the (optional) admin password for a bearer token.
func (c *HTTPClient) Login(password string) (*dto.AuthResponse, error) {
	var result dto.AuthResponse
	if _, err := c.do(http.MethodPost, "/auth/login", dto.LoginRequest{Password: password}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ListMovies() ([]dto.MovieResponse, error) {
	var movies []dto.MovieResponse
	_, err := c.do(http.MethodGet, "/movie", nil, &movies)
	return movies, err
}

func (c *HTTPClient) GetMovie(id int64) (*dto.MovieResponse, error) {
	var movie dto.MovieResponse
	if _, err := c.do(http.MethodGet, "/movie/"+strconv.FormatInt(id, 10), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *HTTPClient) SearchMovies(query string) ([]dto.MovieResponse, error) {
	var movies []dto.MovieResponse
	_, err := c.do(http.MethodGet, "/movie/search?query="+url.QueryEscape(query), nil, &movies)
	return movies, err
}

func (c *HTTPClient) CreateMovie(request dto.CreateMovieDTO) (*dto.MovieResponse, error) {
	var movie dto.MovieResponse
	if _, err := c.do(http.MethodPost, "/movie", request, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (c *HTTPClient) UpdateMovie(id int64, request dto.UpdateMovieDTO) error {
	_, err := c.do(http.MethodPut, "/movie/"+strconv.FormatInt(id, 10), request, nil)
	return err
}

func (c *HTTPClient) DeleteMovie(id int64) error {
	_, err := c.do(http.MethodDelete, "/movie/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}

func (c *HTTPClient) MovieActors(id int64) ([]dto.ActorResponse, error) {
	var actors []dto.ActorResponse
	_, err := c.do(http.MethodGet, fmt.Sprintf("/movie/%d/actors", id), nil, &actors)
	return actors, err
}

func (c *HTTPClient) ListActors(page, pageSize int) (*ActorPage, error) {
	var actors []dto.ActorResponse
	resp, err := c.do(http.MethodGet, fmt.Sprintf("/actor?page=%d&page_size=%d", page, pageSize), nil, &actors)
	if err != nil {
		return nil, err
	}
	total, _ := strconv.ParseInt(resp.Header.Get("X-Total-Count"), 10, 64)
	return &ActorPage{Actors: actors, Total: total}, nil
}

func (c *HTTPClient) GetActor(id int64) (*dto.ActorResponse, error) {
	var actor dto.ActorResponse
	if _, err := c.do(http.MethodGet, "/actor/"+strconv.FormatInt(id, 10), nil, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (c *HTTPClient) SearchActors(query string) ([]dto.ActorResponse, error) {
	var actors []dto.ActorResponse
	_, err := c.do(http.MethodGet, "/actor/search?query="+url.QueryEscape(query), nil, &actors)
	return actors, err
}

func (c *HTTPClient) ActorMovies(id int64) ([]dto.MovieResponse, error) {
	var movies []dto.MovieResponse
	_, err := c.do(http.MethodGet, fmt.Sprintf("/actor/%d/movies", id), nil, &movies)
	return movies, err
}

func (c *HTTPClient) CreateActor(name string) (*dto.ActorResponse, error) {
	var actor dto.ActorResponse
	if _, err := c.do(http.MethodPost, "/actor", dto.CreateActorDTO{Name: name}, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (c *HTTPClient) UpdateActor(id int64, name string) (*dto.ActorResponse, error) {
	var actor dto.ActorResponse
	if _, err := c.do(http.MethodPut, "/actor/"+strconv.FormatInt(id, 10), dto.UpdateActorDTO{Name: name}, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}

func (c *HTTPClient) DeleteActor(id int64) (*dto.ActorResponse, error) {
	var actor dto.ActorResponse
	if _, err := c.do(http.MethodDelete, "/actor/"+strconv.FormatInt(id, 10), nil, &actor); err != nil {
		return nil, err
	}
	return &actor, nil
}
