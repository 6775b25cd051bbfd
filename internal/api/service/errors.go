package service

import "errors"

var (
	ErrMovieNotFound      = errors.New("movie not found")
	ErrActorNotFound      = errors.New("actor not found")
	ErrRatingNotOwned     = errors.New("rating does not belong to this movie")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
