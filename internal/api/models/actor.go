package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidActor = errors.New("invalid actor")

const maxActorNameLength = 100

type Actor struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:100;not null;index"`

	// inverse side of Movie.Actors
	Movies []Movie `json:"movies,omitempty" gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE;"`
}

func (Actor) TableName() string {
	return "actors"
}

// NewActor rejects a blank name. Length is left to IsValid so callers can
// decide whether an over-long name is fatal.
func NewActor(name string) (*Actor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidActor)
	}
	return &Actor{Name: name, Movies: []Movie{}}, nil
}

// Rename replaces the name after validating it.
func (a *Actor) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidActor)
	}
	if utf8.RuneCountInString(name) > maxActorNameLength {
		return fmt.Errorf("%w: name longer than %d characters", ErrInvalidActor, maxActorNameLength)
	}
	a.Name = name
	return nil
}

func (a *Actor) IsValid() bool {
	return strings.TrimSpace(a.Name) != "" && utf8.RuneCountInString(a.Name) <= maxActorNameLength
}

// SameActor compares identity by id. Actors that were never persisted
// (id 0) are distinct from every other actor, including each other.
func SameActor(a, b Actor) bool {
	if a.ID == 0 || b.ID == 0 {
		return false
	}
	return a.ID == b.ID
}
