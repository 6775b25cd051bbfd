package repository

import (
	"context"
	"fmt"

	"moviehub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// Transaction runs fn against a repo bound to a single transaction.
// Any error returned by fn rolls everything back.
func (r *MovieRepo) Transaction(ctx context.Context, fn func(tx *MovieRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&MovieRepo{db: tx})
	})
}

func (r *MovieRepo) GetAll(ctx context.Context) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Preload("Actors", orderByID).
		Preload("Ratings", orderByID).
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}
	return list, nil
}

// SearchByTitle returns movies whose title contains query (case-sensitive).
// A blank query returns every movie.
func (r *MovieRepo) SearchByTitle(ctx context.Context, query string) ([]models.Movie, error) {
	if isBlank(query) {
		return r.GetAll(ctx)
	}
	var list []models.Movie
	db := r.db.WithContext(ctx)
	if err := db.
		Where(containsClause(db, "title"), query).
		Preload("Actors", orderByID).
		Preload("Ratings", orderByID).
		Order("id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search movies by title: %w", err)
	}
	return list, nil
}

// LoadWithActorsAndRatings loads the full aggregate.
// Returns gorm.ErrRecordNotFound when the movie does not exist.
func (r *MovieRepo) LoadWithActorsAndRatings(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).
		Preload("Actors", orderByID).
		Preload("Ratings", orderByID).
		First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadWithRatings loads the movie and its owned ratings only.
func (r *MovieRepo) LoadWithRatings(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).Preload("Ratings", orderByID).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadShallow loads the movie row without any related collection.
func (r *MovieRepo) LoadShallow(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts the movie row only; associations are reconciled separately.
func (r *MovieRepo) Create(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

// SaveScalars persists title and year without touching associations.
func (r *MovieRepo) SaveScalars(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{ID: m.ID}).
		Select("title", "year").
		Updates(map[string]any{"title": m.Title, "year": m.Year}).Error; err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

// Delete removes the movie row and reports how many rows were affected.
func (r *MovieRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Movie{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("delete movie: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// FindActorsByIDs returns the actors that exist among ids.
func (r *MovieRepo) FindActorsByIDs(ctx context.Context, ids []int64) ([]models.Actor, error) {
	var list []models.Actor
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("find actors: %w", err)
	}
	return list, nil
}

// CreateActor inserts a brand new actor so it can be associated by id.
func (r *MovieRepo) CreateActor(ctx context.Context, a *models.Actor) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("create actor: %w", err)
	}
	return nil
}

func (r *MovieRepo) AttachActors(ctx context.Context, m *models.Movie, actors []models.Actor) error {
	if len(actors) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{ID: m.ID}).
		Association("Actors").
		Append(actors); err != nil {
		return fmt.Errorf("attach actors: %w", err)
	}
	return nil
}

// DetachActors removes association rows only; the actors themselves remain.
func (r *MovieRepo) DetachActors(ctx context.Context, m *models.Movie, actors []models.Actor) error {
	if len(actors) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{ID: m.ID}).
		Association("Actors").
		Delete(actors); err != nil {
		return fmt.Errorf("detach actors: %w", err)
	}
	return nil
}

func (r *MovieRepo) ClearActors(ctx context.Context, m *models.Movie) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{ID: m.ID}).
		Association("Actors").
		Clear(); err != nil {
		return fmt.Errorf("clear actors: %w", err)
	}
	return nil
}

// AddRating attaches a new rating to movieID.
func (r *MovieRepo) AddRating(ctx context.Context, movieID int64, rating *models.Rating) error {
	rating.MovieID = movieID
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

// FindRating returns gorm.ErrRecordNotFound for an unknown id.
func (r *MovieRepo) FindRating(ctx context.Context, id int64) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *MovieRepo) DeleteRating(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Delete(&models.Rating{}, rating.ID).Error; err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	return nil
}

// ActorsInMovie returns an empty list for an unknown movie.
func (r *MovieRepo) ActorsInMovie(ctx context.Context, movieID int64) ([]models.Actor, error) {
	var list []models.Actor
	if err := r.db.WithContext(ctx).
		Joins("JOIN movie_actors ma ON ma.actor_id = actors.id").
		Where("ma.movie_id = ?", movieID).
		Order("actors.id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get actors in movie: %w", err)
	}
	return list, nil
}

// MoviesByActor returns the movies an actor appears in, fully loaded.
func (r *MovieRepo) MoviesByActor(ctx context.Context, actorID int64) ([]models.Movie, error) {
	var list []models.Movie
	if err := r.db.WithContext(ctx).
		Joins("JOIN movie_actors ma ON ma.movie_id = movies.id").
		Where("ma.actor_id = ?", actorID).
		Preload("Actors", orderByID).
		Preload("Ratings", orderByID).
		Order("movies.id asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get movies by actor: %w", err)
	}
	return list, nil
}

// CountMovies is used by seeding to detect an empty store.
func (r *MovieRepo) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Movie{}).Count(&count).Error
	return count, err
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id asc")
}
