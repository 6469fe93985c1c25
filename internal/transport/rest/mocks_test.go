package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
	"github.com/heartmarshall/featureboard-backend/internal/notify"
	"github.com/heartmarshall/featureboard-backend/internal/service/feature"
)

var _ featureService = &featureServiceMock{}

type featureServiceMock struct {
	SubmitFunc     func(ctx context.Context, input feature.SubmitInput) (*domain.FeatureRequest, error)
	GetFunc        func(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	ListFunc       func(ctx context.Context, input feature.ListInput) ([]domain.FeatureRequest, error)
	ToggleVoteFunc func(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error)
	DecideFunc     func(ctx context.Context, id uuid.UUID, input feature.DecideInput) (*domain.FeatureRequest, error)

	mu    sync.Mutex
	calls struct {
		Submit     []feature.SubmitInput
		List       []feature.ListInput
		ToggleVote []uuid.UUID
		Decide     []feature.DecideInput
	}
}

func (m *featureServiceMock) Submit(ctx context.Context, input feature.SubmitInput) (*domain.FeatureRequest, error) {
	if m.SubmitFunc == nil {
		panic("featureServiceMock.SubmitFunc: method is nil but featureService.Submit was just called")
	}
	m.mu.Lock()
	m.calls.Submit = append(m.calls.Submit, input)
	m.mu.Unlock()
	return m.SubmitFunc(ctx, input)
}

func (m *featureServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	if m.GetFunc == nil {
		panic("featureServiceMock.GetFunc: method is nil but featureService.Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *featureServiceMock) List(ctx context.Context, input feature.ListInput) ([]domain.FeatureRequest, error) {
	if m.ListFunc == nil {
		panic("featureServiceMock.ListFunc: method is nil but featureService.List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, input)
	m.mu.Unlock()
	return m.ListFunc(ctx, input)
}

func (m *featureServiceMock) ToggleVote(ctx context.Context, id uuid.UUID) (*domain.FeatureRequest, error) {
	if m.ToggleVoteFunc == nil {
		panic("featureServiceMock.ToggleVoteFunc: method is nil but featureService.ToggleVote was just called")
	}
	m.mu.Lock()
	m.calls.ToggleVote = append(m.calls.ToggleVote, id)
	m.mu.Unlock()
	return m.ToggleVoteFunc(ctx, id)
}

func (m *featureServiceMock) Decide(ctx context.Context, id uuid.UUID, input feature.DecideInput) (*domain.FeatureRequest, error) {
	if m.DecideFunc == nil {
		panic("featureServiceMock.DecideFunc: method is nil but featureService.Decide was just called")
	}
	m.mu.Lock()
	m.calls.Decide = append(m.calls.Decide, input)
	m.mu.Unlock()
	return m.DecideFunc(ctx, id, input)
}

var _ streamService = &streamServiceMock{}

type streamServiceMock struct {
	WatchFunc           func(ctx context.Context, input feature.ListInput) (<-chan []domain.FeatureRequest, error)
	WatchRejectionsFunc func(ctx context.Context) (<-chan *notify.Delivery, error)
}

func (m *streamServiceMock) Watch(ctx context.Context, input feature.ListInput) (<-chan []domain.FeatureRequest, error) {
	if m.WatchFunc == nil {
		panic("streamServiceMock.WatchFunc: method is nil but streamService.Watch was just called")
	}
	return m.WatchFunc(ctx, input)
}

func (m *streamServiceMock) WatchRejections(ctx context.Context) (<-chan *notify.Delivery, error) {
	if m.WatchRejectionsFunc == nil {
		panic("streamServiceMock.WatchRejectionsFunc: method is nil but streamService.WatchRejections was just called")
	}
	return m.WatchRejectionsFunc(ctx)
}

var _ authService = &authServiceMock{}

type authServiceMock struct {
	SignOutFunc func(ctx context.Context) error
}

func (m *authServiceMock) SignOut(ctx context.Context) error {
	if m.SignOutFunc == nil {
		panic("authServiceMock.SignOutFunc: method is nil but authService.SignOut was just called")
	}
	return m.SignOutFunc(ctx)
}
