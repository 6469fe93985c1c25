package auth

import (
	"context"
	"sync"
	"time"
)

var _ tokenStore = &tokenStoreMock{}

type tokenStoreMock struct {
	RevokeTokenFunc              func(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevokedFunc           func(ctx context.Context, tokenID string) (bool, error)
	DeleteExpiredRevocationsFunc func(ctx context.Context, now time.Time) (int64, error)

	calls struct {
		RevokeToken []struct {
			Ctx       context.Context
			TokenID   string
			ExpiresAt time.Time
		}
		IsTokenRevoked []struct {
			Ctx     context.Context
			TokenID string
		}
		DeleteExpiredRevocations []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockRevokeToken              sync.RWMutex
	lockIsTokenRevoked           sync.RWMutex
	lockDeleteExpiredRevocations sync.RWMutex
}

func (mock *tokenStoreMock) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if mock.RevokeTokenFunc == nil {
		panic("tokenStoreMock.RevokeTokenFunc: method is nil but tokenStore.RevokeToken was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TokenID   string
		ExpiresAt time.Time
	}{Ctx: ctx, TokenID: tokenID, ExpiresAt: expiresAt}
	mock.lockRevokeToken.Lock()
	mock.calls.RevokeToken = append(mock.calls.RevokeToken, callInfo)
	mock.lockRevokeToken.Unlock()
	return mock.RevokeTokenFunc(ctx, tokenID, expiresAt)
}

func (mock *tokenStoreMock) RevokeTokenCalls() []struct {
	Ctx       context.Context
	TokenID   string
	ExpiresAt time.Time
} {
	mock.lockRevokeToken.RLock()
	calls := mock.calls.RevokeToken
	mock.lockRevokeToken.RUnlock()
	return calls
}

func (mock *tokenStoreMock) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if mock.IsTokenRevokedFunc == nil {
		panic("tokenStoreMock.IsTokenRevokedFunc: method is nil but tokenStore.IsTokenRevoked was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		TokenID string
	}{Ctx: ctx, TokenID: tokenID}
	mock.lockIsTokenRevoked.Lock()
	mock.calls.IsTokenRevoked = append(mock.calls.IsTokenRevoked, callInfo)
	mock.lockIsTokenRevoked.Unlock()
	return mock.IsTokenRevokedFunc(ctx, tokenID)
}

func (mock *tokenStoreMock) IsTokenRevokedCalls() []struct {
	Ctx     context.Context
	TokenID string
} {
	mock.lockIsTokenRevoked.RLock()
	calls := mock.calls.IsTokenRevoked
	mock.lockIsTokenRevoked.RUnlock()
	return calls
}

func (mock *tokenStoreMock) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	if mock.DeleteExpiredRevocationsFunc == nil {
		panic("tokenStoreMock.DeleteExpiredRevocationsFunc: method is nil but tokenStore.DeleteExpiredRevocations was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockDeleteExpiredRevocations.Lock()
	mock.calls.DeleteExpiredRevocations = append(mock.calls.DeleteExpiredRevocations, callInfo)
	mock.lockDeleteExpiredRevocations.Unlock()
	return mock.DeleteExpiredRevocationsFunc(ctx, now)
}

func (mock *tokenStoreMock) DeleteExpiredRevocationsCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockDeleteExpiredRevocations.RLock()
	calls := mock.calls.DeleteExpiredRevocations
	mock.lockDeleteExpiredRevocations.RUnlock()
	return calls
}
