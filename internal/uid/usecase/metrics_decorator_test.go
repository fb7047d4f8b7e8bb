package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	uidMocks "github.com/allisson/uids/internal/uid/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", mock.Anything, "uid", operation, status).Once()
	m.On("RecordDuration", mock.Anything, "uid", operation, mock.AnythingOfType("time.Duration"), status).Once()
}

func TestNewUidUseCaseWithMetrics(t *testing.T) {
	decorator := NewUidUseCaseWithMetrics(&uidMocks.MockUidUseCase{}, &mockBusinessMetrics{})
	assert.IsType(t, &uidUseCaseWithMetrics{}, decorator)
}

func TestUidUseCaseWithMetrics_Encode(t *testing.T) {
	ctx := context.Background()
	uid := uidDomain.Persistable{Kind: 1, ID: 2}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		mockUseCase.On("Encode", ctx, uid).Return("token", nil).Once()
		expectMetrics(mockMetrics, "encode", "success")

		token, err := NewUidUseCaseWithMetrics(mockUseCase, mockMetrics).Encode(ctx, uid)

		assert.NoError(t, err)
		assert.Equal(t, "token", token)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		mockUseCase.On("Encode", ctx, uid).Return("", uidDomain.ErrEncodeRejected).Once()
		expectMetrics(mockMetrics, "encode", "invalid_input")

		_, err := NewUidUseCaseWithMetrics(mockUseCase, mockMetrics).Encode(ctx, uid)

		assert.ErrorIs(t, err, uidDomain.ErrEncodeRejected)
		mockMetrics.AssertExpectations(t)
	})
}

func TestUidUseCaseWithMetrics_Decode(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expected := uidDomain.Persistable{Kind: 3, ID: 4}
		mockUseCase.On("Decode", ctx, "token").Return(expected, nil).Once()
		expectMetrics(mockMetrics, "decode", "success")

		got, err := NewUidUseCaseWithMetrics(mockUseCase, mockMetrics).Decode(ctx, "token")

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		mockUseCase.On("Decode", ctx, "bad").Return(nil, uidDomain.ErrMalformedToken).Once()
		expectMetrics(mockMetrics, "decode", "invalid_input")

		got, err := NewUidUseCaseWithMetrics(mockUseCase, mockMetrics).Decode(ctx, "bad")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, uidDomain.ErrMalformedToken)
		mockMetrics.AssertExpectations(t)
	})
}

func TestUidUseCaseWithMetrics_Batches(t *testing.T) {
	ctx := context.Background()
	mockUseCase := &uidMocks.MockUidUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	decorator := NewUidUseCaseWithMetrics(mockUseCase, mockMetrics)

	uids := []uidDomain.Uid{uidDomain.Persistable{Kind: 1, ID: 1}}
	encodeResults := []uidDomain.EncodeResult{{Err: uidDomain.ErrEncodeRejected}}
	mockUseCase.On("EncodeBatch", ctx, uids).Return(encodeResults, nil).Once()
	expectMetrics(mockMetrics, "encode_batch", "success")

	tokens := []string{"a"}
	mockUseCase.On("DecodeBatch", ctx, tokens).Return(nil, context.Canceled).Once()
	expectMetrics(mockMetrics, "decode_batch", "error")

	got, err := decorator.EncodeBatch(ctx, uids)
	assert.NoError(t, err)
	assert.Equal(t, encodeResults, got)

	_, err = decorator.DecodeBatch(ctx, tokens)
	assert.ErrorIs(t, err, context.Canceled)

	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}

func TestUidUseCaseWithMetrics_Variants(t *testing.T) {
	mockUseCase := &uidMocks.MockUidUseCase{}
	mockUseCase.On("Variants").Return([]uidDomain.Variant{uidDomain.VariantUUIDv4}).Once()

	got := NewUidUseCaseWithMetrics(mockUseCase, &mockBusinessMetrics{}).Variants()

	assert.Equal(t, []uidDomain.Variant{uidDomain.VariantUUIDv4}, got)
}
