package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"moviehub/internal/api/models"
	"moviehub/internal/api/repository"
	"moviehub/internal/testutil"
)

func TestActorRepo_GetAllPaginates(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedDatabase(t, db)
	repo := repository.NewActorRepo(db)
	ctx := context.Background()

	page1, total, err := repo.GetAll(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Test Actor 1", page1[0].Name)

	page2, _, err := repo.GetAll(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 1)
	assert.Equal(t, "Test Actor 3", page2[0].Name)
}

func TestActorRepo_SearchByName(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedDatabase(t, db)
	repo := repository.NewActorRepo(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &models.Actor{Name: "Other"}))

	t.Run("Match", func(t *testing.T) {
		list, err := repo.SearchByName(ctx, "Test")
		require.NoError(t, err)
		assert.Len(t, list, 3)
		for _, a := range list {
			assert.Contains(t, a.Name, "Test")
		}
	})

	t.Run("Blank", func(t *testing.T) {
		list, err := repo.SearchByName(ctx, "")
		require.NoError(t, err)
		assert.Len(t, list, 4)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		list, err := repo.SearchByName(ctx, "other")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestActorRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewDB(t)
	seed := testutil.SeedDatabase(t, db)
	repo := repository.NewActorRepo(db)
	movies := repository.NewMovieRepo(db)
	ctx := context.Background()

	actor := seed.Actors[0]
	require.NoError(t, actor.Rename("Renamed"))
	require.NoError(t, repo.Update(ctx, &actor))

	got, err := repo.GetByID(ctx, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, repo.Delete(ctx, got))
	_, err = repo.GetByID(ctx, actor.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// both movies lost the association but still exist
	in1, err := movies.ActorsInMovie(ctx, seed.Movie.ID)
	require.NoError(t, err)
	assert.Len(t, in1, 1)
	in2, err := movies.ActorsInMovie(ctx, seed.Movie2.ID)
	require.NoError(t, err)
	assert.Len(t, in2, 1)
}
