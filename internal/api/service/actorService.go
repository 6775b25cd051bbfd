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

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type ActorService interface {
	List(ctx context.Context, page, pageSize int) ([]dto.ActorResponse, int64, error)
	GetByID(ctx context.Context, id int64) (*dto.ActorResponse, error)
	Search(ctx context.Context, query string) ([]dto.ActorResponse, error)
	Create(ctx context.Context, in dto.CreateActorDTO) (*dto.ActorResponse, error)
	Update(ctx context.Context, id int64, in dto.UpdateActorDTO) (*dto.ActorResponse, error)
	Delete(ctx context.Context, id int64) (*dto.ActorResponse, error)
}

type actorService struct {
	repo   *repository.ActorRepo
	events events.Publisher
}

func NewActorService(r *repository.ActorRepo, publisher events.Publisher) ActorService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &actorService{repo: r, events: publisher}
}

// NormalizePage applies the listing defaults: page 1, 20 per page, at most 100.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (s *actorService) List(ctx context.Context, page, pageSize int) ([]dto.ActorResponse, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)
	list, total, err := s.repo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return dto.ActorsFromModels(list), total, nil
}

func (s *actorService) GetByID(ctx context.Context, id int64) (*dto.ActorResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToActorResponse(*a)
	return &resp, nil
}

func (s *actorService) Search(ctx context.Context, query string) ([]dto.ActorResponse, error) {
	list, err := s.repo.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return dto.ActorsFromModels(list), nil
}

func (s *actorService) Create(ctx context.Context, in dto.CreateActorDTO) (*dto.ActorResponse, error) {
	a, err := models.NewActor(in.Name)
	if err != nil {
		return nil, err
	}
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: name longer than 100 characters", models.ErrInvalidActor)
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ActorCreated, a.ID)
	resp := dto.ToActorResponse(*a)
	return &resp, nil
}

func (s *actorService) Update(ctx context.Context, id int64, in dto.UpdateActorDTO) (*dto.ActorResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := a.Rename(in.Name); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ActorUpdated, a.ID)
	resp := dto.ToActorResponse(*a)
	return &resp, nil
}

// Delete detaches the actor from all movies, removes it and returns what was removed.
func (s *actorService) Delete(ctx context.Context, id int64) (*dto.ActorResponse, error) {
	a, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, a); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ActorDeleted, a.ID)
	resp := dto.ToActorResponse(*a)
	return &resp, nil
}

func (s *actorService) find(ctx context.Context, id int64) (*models.Actor, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *actorService) publish(ctx context.Context, eventType string, id int64) {
	if err := s.events.Publish(ctx, events.NewEvent(eventType, id)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("event", eventType).Int64("actor_id", id).Msg("lifecycle event dropped")
	}
}
