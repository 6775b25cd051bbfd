// Package testutil provides an isolated in-memory store for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"moviehub/database"
	"moviehub/internal/api/models"
)

// NewDB returns a migrated in-memory sqlite database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { database.Close(db) })
	return db
}

// Seed mirrors the fixture used across service tests:
// three actors "Test Actor 1..3", "Test Movie" (2025) with actors 1 and 2,
// "Test Movie 2" (2024) with actors 1 and 3.
type Seed struct {
	Actors []models.Actor
	Movie  models.Movie
	Movie2 models.Movie
}

func SeedDatabase(t testing.TB, db *gorm.DB) Seed {
	t.Helper()

	actors := []models.Actor{
		{Name: "Test Actor 1"},
		{Name: "Test Actor 2"},
		{Name: "Test Actor 3"},
	}
	require.NoError(t, db.Create(&actors).Error)

	movie := models.Movie{Title: "Test Movie", Year: 2025, Actors: []models.Actor{actors[0], actors[1]}}
	movie2 := models.Movie{Title: "Test Movie 2", Year: 2024, Actors: []models.Actor{actors[0], actors[2]}}
	require.NoError(t, db.Create(&movie).Error)
	require.NoError(t, db.Create(&movie2).Error)

	return Seed{Actors: actors, Movie: movie, Movie2: movie2}
}

// AddRatings attaches ratings to movieID directly through the store.
func AddRatings(t testing.TB, db *gorm.DB, movieID int64, ratings ...models.Rating) []models.Rating {
	t.Helper()
	for i := range ratings {
		ratings[i].MovieID = movieID
	}
	require.NoError(t, db.Create(&ratings).Error)
	return ratings
}
