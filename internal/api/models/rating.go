package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidRating = errors.New("invalid rating")

const (
	MinRating = 0.0
	MaxRating = 10.0
)

type Rating struct {
	ID      int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Rating  float64 `json:"rating" gorm:"not null;check:rating >= 0 AND rating <= 10"`
	Review  string  `json:"review" gorm:"type:text;not null"`
	MovieID int64   `json:"movie_id" gorm:"not null;index"`
}

func (Rating) TableName() string {
	return "ratings"
}

// NewRating validates the score range and review text before building the rating.
// The owning movie is set when the rating is attached.
func NewRating(rating float64, review string) (*Rating, error) {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between 0 and 10", ErrInvalidRating)
	}
	if strings.TrimSpace(review) == "" {
		return nil, fmt.Errorf("%w: review cannot be empty", ErrInvalidRating)
	}
	return &Rating{Rating: rating, Review: review}, nil
}
