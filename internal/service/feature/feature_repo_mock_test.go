package feature

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

var _ featureRepo = &featureRepoMock{}

type featureRepoMock struct {
	CreateFunc  func(ctx context.Context, fr *domain.FeatureRequest) (*domain.FeatureRequest, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	ListFunc    func(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error)
	UpdateFunc  func(ctx context.Context, id uuid.UUID, fn func(*domain.FeatureRequest) error) (*domain.FeatureRequest, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Fr  *domain.FeatureRequest
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.FeatureFilter
		}
		Update []struct {
			Ctx context.Context
			ID  uuid.UUID
			Fn  func(*domain.FeatureRequest) error
		}
	}
	lockCreate  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
	lockUpdate  sync.RWMutex
}

func (mock *featureRepoMock) Create(ctx context.Context, fr *domain.FeatureRequest) (*domain.FeatureRequest, error) {
	if mock.CreateFunc == nil {
		panic("featureRepoMock.CreateFunc: method is nil but featureRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fr  *domain.FeatureRequest
	}{Ctx: ctx, Fr: fr}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, fr)
}

func (mock *featureRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Fr  *domain.FeatureRequest
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *featureRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	if mock.GetByIDFunc == nil {
		panic("featureRepoMock.GetByIDFunc: method is nil but featureRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *featureRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *featureRepoMock) List(ctx context.Context, filter domain.FeatureFilter) ([]domain.FeatureRequest, error) {
	if mock.ListFunc == nil {
		panic("featureRepoMock.ListFunc: method is nil but featureRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.FeatureFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *featureRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.FeatureFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *featureRepoMock) Update(ctx context.Context, id uuid.UUID, fn func(*domain.FeatureRequest) error) (*domain.FeatureRequest, error) {
	if mock.UpdateFunc == nil {
		panic("featureRepoMock.UpdateFunc: method is nil but featureRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		Fn  func(*domain.FeatureRequest) error
	}{Ctx: ctx, ID: id, Fn: fn}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, fn)
}

func (mock *featureRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	Fn  func(*domain.FeatureRequest) error
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
