package models

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidMovie = errors.New("invalid movie")

// earliest year a movie may carry (exclusive)
const minMovieYear = 1800

type Movie struct {
	ID    int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title string `json:"title" gorm:"not null;index"`
	Year  int    `json:"year" gorm:"not null"`

	// associations
	Actors  []Actor  `json:"actors,omitempty" gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE;"`
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;"`
}

func (Movie) TableName() string {
	return "movies"
}

// NewMovie creates an unpersisted movie with no actors or ratings.
// Validity is checked separately through IsValid.
func NewMovie(title string, year int) *Movie {
	return &Movie{
		Title:   title,
		Year:    year,
		Actors:  []Actor{},
		Ratings: []Rating{},
	}
}

func (m *Movie) SetTitle(title string) { m.Title = title }

func (m *Movie) SetYear(year int) { m.Year = year }

// IsValid reports whether the title is set and the year lies in (1800, current year].
func (m *Movie) IsValid() bool {
	return strings.TrimSpace(m.Title) != "" &&
		m.Year > minMovieYear &&
		m.Year <= time.Now().Year()
}

// ActorIDs returns the ids of the associated actors.
func (m *Movie) ActorIDs() []int64 {
	ids := make([]int64, 0, len(m.Actors))
	for _, a := range m.Actors {
		ids = append(ids, a.ID)
	}
	return ids
}
