package dto

import "moviehub/internal/api/models"

// RatingDTO is both the input and output shape of a movie rating.
// ID 0 on input asks for a new rating; its review is checked by NewRating.
// A non-zero ID only references a rating the movie already owns.
type RatingDTO struct {
	ID     int64   `json:"id"`
	Rating float64 `json:"rating" binding:"min=0,max=10"`
	Review string  `json:"review"`
}

func ToRatingDTO(r models.Rating) RatingDTO {
	return RatingDTO{
		ID:     r.ID,
		Rating: r.Rating,
		Review: r.Review,
	}
}

func RatingsFromModels(list []models.Rating) []RatingDTO {
	resp := make([]RatingDTO, 0, len(list))
	for _, r := range list {
		resp = append(resp, ToRatingDTO(r))
	}
	return resp
}

// ToModel builds a validated rating entity from the transfer shape.
func (d RatingDTO) ToModel() (*models.Rating, error) {
	return models.NewRating(d.Rating, d.Review)
}
