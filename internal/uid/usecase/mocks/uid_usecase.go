// Package mocks provides mock implementations for testing callers of UidUseCase.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// MockUidUseCase is a mock implementation of UidUseCase for testing.
type MockUidUseCase struct {
	mock.Mock
}

// Encode mocks the Encode method of UidUseCase.
func (m *MockUidUseCase) Encode(ctx context.Context, uid uidDomain.Uid) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}

// Decode mocks the Decode method of UidUseCase.
func (m *MockUidUseCase) Decode(ctx context.Context, token string) (uidDomain.Uid, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(uidDomain.Uid), args.Error(1)
}

// EncodeBatch mocks the EncodeBatch method of UidUseCase.
func (m *MockUidUseCase) EncodeBatch(
	ctx context.Context,
	uids []uidDomain.Uid,
) ([]uidDomain.EncodeResult, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uidDomain.EncodeResult), args.Error(1)
}

// DecodeBatch mocks the DecodeBatch method of UidUseCase.
func (m *MockUidUseCase) DecodeBatch(
	ctx context.Context,
	tokens []string,
) ([]uidDomain.DecodeResult, error) {
	args := m.Called(ctx, tokens)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uidDomain.DecodeResult), args.Error(1)
}

// Variants mocks the Variants method of UidUseCase.
func (m *MockUidUseCase) Variants() []uidDomain.Variant {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]uidDomain.Variant)
}
