package handler_test

import (
	"context"

	"moviehub/internal/api/dto"
	"moviehub/internal/api/service"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetAll(ctx context.Context) ([]dto.MovieResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) GetByID(ctx context.Context, id int64) (*dto.MovieResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Search(ctx context.Context, query string) ([]dto.MovieResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, in dto.CreateMovieDTO) (*dto.MovieResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id int64, in dto.UpdateMovieDTO) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMovieService) ActorsInMovie(ctx context.Context, movieID int64) ([]dto.ActorResponse, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ActorResponse), args.Error(1)
}

func (m *MockMovieService) MoviesByActor(ctx context.Context, actorID int64) ([]dto.MovieResponse, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MovieResponse), args.Error(1)
}

type MockActorService struct {
	mock.Mock
}

func (m *MockActorService) List(ctx context.Context, page, pageSize int) ([]dto.ActorResponse, int64, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]dto.ActorResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockActorService) GetByID(ctx context.Context, id int64) (*dto.ActorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ActorResponse), args.Error(1)
}

func (m *MockActorService) Search(ctx context.Context, query string) ([]dto.ActorResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ActorResponse), args.Error(1)
}

func (m *MockActorService) Create(ctx context.Context, in dto.CreateActorDTO) (*dto.ActorResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ActorResponse), args.Error(1)
}

func (m *MockActorService) Update(ctx context.Context, id int64, in dto.UpdateActorDTO) (*dto.ActorResponse, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ActorResponse), args.Error(1)
}

func (m *MockActorService) Delete(ctx context.Context, id int64) (*dto.ActorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ActorResponse), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(password string) (*dto.AuthResponse, error) {
	args := m.Called(password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}
