// Package seed fills an empty store with fake movies for local development.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
)

const yearsBack = 20

type Seeder struct {
	repo  *repository.MovieRepo
	faker *gofakeit.Faker
	log   zerolog.Logger
}

// New returns a seeder. A zero seed draws from a random source.
func New(repo *repository.MovieRepo, seed uint64, log zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, faker: gofakeit.New(seed), log: log}
}

// Run inserts count movies when the movie table is empty and reports how
// many were created.
func (s *Seeder) Run(ctx context.Context, count int) (int, error) {
	existing, err := s.repo.CountMovies(ctx)
	if err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	if existing > 0 {
		s.log.Debug().Int64("existing", existing).Msg("store not empty, skipping seed")
		return 0, nil
	}

	created := 0
	err = s.repo.Transaction(ctx, func(tx *repository.MovieRepo) error {
		for i := 0; i < count; i++ {
			if err := s.seedMovie(ctx, tx); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed movies: %w", err)
	}

	s.log.Info().Int("movies", created).Msg("Seeded fake movies")
	return created, nil
}

// seedMovie creates one movie with a single actor and 2-5 ratings.
func (s *Seeder) seedMovie(ctx context.Context, tx *repository.MovieRepo) error {
	thisYear := time.Now().Year()
	movie := models.NewMovie(s.title(), s.faker.IntRange(thisYear-yearsBack+1, thisYear))
	if err := tx.Create(ctx, movie); err != nil {
		return err
	}

	actor, err := models.NewActor(s.faker.Name())
	if err != nil {
		return err
	}
	if err := tx.CreateActor(ctx, actor); err != nil {
		return err
	}
	if err := tx.AttachActors(ctx, movie, []models.Actor{*actor}); err != nil {
		return err
	}

	for j, n := 0, s.faker.IntRange(2, 5); j < n; j++ {
		r, err := models.NewRating(float64(s.faker.IntRange(1, 10)), s.faker.Sentence(8))
		if err != nil {
			return err
		}
		if err := tx.AddRating(ctx, movie.ID, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) title() string {
	w := s.faker.Word()
	if w == "" {
		return "Untitled"
	}
	return strings.ToUpper(w[:1]) + w[1:]
}
