package dto

import "moviehub/internal/api/models"

// CreateMovieDTO used for POST /api/movie
type CreateMovieDTO struct {
	Title   string      `json:"title" binding:"required"`
	Year    int         `json:"year" binding:"required"`
	Actors  []ActorDTO  `json:"actors"`
	Ratings []RatingDTO `json:"ratings" binding:"dive"`
}

// UpdateMovieDTO used for PUT /api/movie/:id. Actors and Ratings are the
// desired final sets, not deltas.
type UpdateMovieDTO struct {
	Title   string      `json:"title"`
	Year    int         `json:"year"`
	Actors  []ActorDTO  `json:"actors"`
	Ratings []RatingDTO `json:"ratings" binding:"dive"`
}

type MovieResponse struct {
	ID      int64           `json:"id"`
	Title   string          `json:"title"`
	Year    int             `json:"year"`
	Actors  []ActorResponse `json:"actors"`
	Ratings []RatingDTO     `json:"ratings"`
}

func (d CreateMovieDTO) ToModel() *models.Movie {
	return models.NewMovie(d.Title, d.Year)
}

func ToMovieResponse(m models.Movie) MovieResponse {
	return MovieResponse{
		ID:      m.ID,
		Title:   m.Title,
		Year:    m.Year,
		Actors:  ActorsFromModels(m.Actors),
		Ratings: RatingsFromModels(m.Ratings),
	}
}

func MoviesFromModels(list []models.Movie) []MovieResponse {
	resp := make([]MovieResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, ToMovieResponse(m))
	}
	return resp
}
