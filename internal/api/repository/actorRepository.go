package repository

import (
	"context"
	"fmt"

	"moviehub/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActorRepo struct {
	db *gorm.DB
}

func NewActorRepo(db *gorm.DB) *ActorRepo {
	return &ActorRepo{db: db}
}

// GetAll returns one page of actors ordered by id, plus the total count.
func (r *ActorRepo) GetAll(ctx context.Context, page, pageSize int) ([]models.Actor, int64, error) {
	var list []models.Actor
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Actor{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count actors: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("get actors: %w", err)
	}
	return list, total, nil
}

// GetByID returns gorm.ErrRecordNotFound for an unknown id.
func (r *ActorRepo) GetByID(ctx context.Context, id int64) (*models.Actor, error) {
	var a models.Actor
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// SearchByName returns actors whose name contains query (case-sensitive).
// A blank query returns every actor, unpaginated.
func (r *ActorRepo) SearchByName(ctx context.Context, query string) ([]models.Actor, error) {
	var list []models.Actor
	db := r.db.WithContext(ctx)
	if !isBlank(query) {
		db = db.Where(containsClause(db, "name"), query)
	}
	if err := db.Order("id asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search actors by name: %w", err)
	}
	return list, nil
}

func (r *ActorRepo) Create(ctx context.Context, a *models.Actor) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error; err != nil {
		return fmt.Errorf("create actor: %w", err)
	}
	return nil
}

func (r *ActorRepo) Update(ctx context.Context, a *models.Actor) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Actor{ID: a.ID}).
		Update("name", a.Name).Error; err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	return nil
}

// Delete detaches the actor from every movie and removes it, atomically.
func (r *ActorRepo) Delete(ctx context.Context, a *models.Actor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Actor{ID: a.ID}).Association("Movies").Clear(); err != nil {
			return fmt.Errorf("detach actor movies: %w", err)
		}
		if err := tx.Delete(&models.Actor{}, a.ID).Error; err != nil {
			return fmt.Errorf("delete actor: %w", err)
		}
		return nil
	})
}
