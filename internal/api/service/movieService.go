package service

import (
	"context"
	"errors"
	"fmt"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"
	"moviehub/internal/events"
	"moviehub/internal/logging"

	"gorm.io/gorm"
)

type MovieService interface {
	GetAll(ctx context.Context) ([]dto.MovieResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.MovieResponse, error)
	Search(ctx context.Context, query string) ([]dto.MovieResponse, error)
	Create(ctx context.Context, in dto.CreateMovieDTO) (*dto.MovieResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateMovieDTO) error
	Delete(ctx context.Context, id int64) (bool, error)

	// relationship reads
	ActorsInMovie(ctx context.Context, movieID int64) ([]dto.ActorResponse, error)
	MoviesByActor(ctx context.Context, actorID int64) ([]dto.MovieResponse, error)
}

type movieService struct {
	repo   *repository.MovieRepo
	events events.Publisher
}

func NewMovieService(r *repository.MovieRepo, publisher events.Publisher) MovieService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &movieService{repo: r, events: publisher}
}

func (s *movieService) GetAll(ctx context.Context) ([]dto.MovieResponse, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.MoviesFromModels(list), nil
}

func (s *movieService) GetByID(ctx context.Context, id int64) (*dto.MovieResponse, error) {
	m, err := s.repo.LoadWithActorsAndRatings(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	resp := dto.ToMovieResponse(*m)
	return &resp, nil
}

func (s *movieService) Search(ctx context.Context, query string) ([]dto.MovieResponse, error) {
	list, err := s.repo.SearchByTitle(ctx, query)
	if err != nil {
		return nil, err
	}
	return dto.MoviesFromModels(list), nil
}

// Create inserts the movie and reconciles the requested actors and ratings
// in the same transaction.
func (s *movieService) Create(ctx context.Context, in dto.CreateMovieDTO) (*dto.MovieResponse, error) {
	movie := in.ToModel()
	if !movie.IsValid() {
		return nil, fmt.Errorf("%w: title must be set and year within (1800, current year]", models.ErrInvalidMovie)
	}

	err := s.repo.Transaction(ctx, func(tx *repository.MovieRepo) error {
		if err := tx.Create(ctx, movie); err != nil {
			return err
		}
		if err := reconcileActors(ctx, tx, movie, in.Actors); err != nil {
			return err
		}
		return reconcileRatings(ctx, tx, movie, in.Ratings)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.MovieCreated, movie.ID)

	created, err := s.repo.LoadWithActorsAndRatings(ctx, movie.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToMovieResponse(*created)
	return &resp, nil
}

// Update loads the aggregate, applies the new scalars, reconciles both
// collections and validates the result. Any failure rolls back every change.
func (s *movieService) Update(ctx context.Context, id int64, in dto.UpdateMovieDTO) error {
	err := s.repo.Transaction(ctx, func(tx *repository.MovieRepo) error {
		movie, err := tx.LoadWithActorsAndRatings(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMovieNotFound
			}
			return err
		}

		movie.SetTitle(in.Title)
		movie.SetYear(in.Year)

		if err := reconcileActors(ctx, tx, movie, in.Actors); err != nil {
			return err
		}
		if err := reconcileRatings(ctx, tx, movie, in.Ratings); err != nil {
			return err
		}

		if !movie.IsValid() {
			return fmt.Errorf("%w: title must be set and year within (1800, current year]", models.ErrInvalidMovie)
		}
		return tx.SaveScalars(ctx, movie)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.MovieUpdated, id)
	return nil
}

// Delete removes the movie together with its ratings and actor links.
// A missing movie reports false with a nil error and leaves the store untouched.
func (s *movieService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := s.repo.Transaction(ctx, func(tx *repository.MovieRepo) error {
		movie, err := tx.LoadWithRatings(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		for _, r := range movie.Ratings {
			rating, err := tx.FindRating(ctx, r.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if err := tx.DeleteRating(ctx, rating); err != nil {
				return err
			}
		}

		if err := tx.ClearActors(ctx, movie); err != nil {
			return err
		}

		affected, err := tx.Delete(ctx, movie.ID)
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		s.publish(ctx, events.MovieDeleted, id)
	}
	return deleted, nil
}

func (s *movieService) ActorsInMovie(ctx context.Context, movieID int64) ([]dto.ActorResponse, error) {
	list, err := s.repo.ActorsInMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return dto.ActorsFromModels(list), nil
}

func (s *movieService) MoviesByActor(ctx context.Context, actorID int64) ([]dto.MovieResponse, error) {
	list, err := s.repo.MoviesByActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return dto.MoviesFromModels(list), nil
}

func (s *movieService) publish(ctx context.Context, eventType string, id int64) {
	if err := s.events.Publish(ctx, events.NewEvent(eventType, id)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event", eventType).Int64("movie_id", id).Msg("lifecycle event dropped")
	}
}
