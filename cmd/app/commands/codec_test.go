package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	uidMocks "github.com/allisson/uids/internal/uid/usecase/mocks"
)

func TestRunEncode(t *testing.T) {
	ctx := context.Background()
	uid := uidDomain.Persistable{Kind: 7, ID: 1001}

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Encode", ctx, uid).Return("0S_nPdHsWfN9LjNWvRqOflw8", nil)

		var out bytes.Buffer
		err := RunEncode(ctx, mockUseCase, IOTuple{Writer: &out}, "persistable", "7:1001", "text")

		require.NoError(t, err)
		assert.Equal(t, "0S_nPdHsWfN9LjNWvRqOflw8\n", out.String())
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_JSON", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Encode", ctx, uid).Return("0S_nPdHsWfN9LjNWvRqOflw8", nil)

		var out bytes.Buffer
		err := RunEncode(ctx, mockUseCase, IOTuple{Writer: &out}, "persistable", "7:1001", "json")
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "persistable", result["variant"])
		assert.Equal(t, "7:1001", result["value"])
		assert.Equal(t, "0S_nPdHsWfN9LjNWvRqOflw8", result["token"])
	})

	t.Run("Error_InvalidValue", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}

		var out bytes.Buffer
		err := RunEncode(ctx, mockUseCase, IOTuple{Writer: &out}, "uuid-v4", "not-a-uuid", "text")

		assert.ErrorIs(t, err, uidDomain.ErrInvalidValue)
		assert.Empty(t, out.String())
		mockUseCase.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidFormat", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}

		err := RunEncode(ctx, mockUseCase, IOTuple{Writer: &bytes.Buffer{}}, "persistable", "7:1001", "yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("Error_UseCase", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Encode", ctx, uid).Return("", uidDomain.ErrPoolExhausted)

		err := RunEncode(ctx, mockUseCase, IOTuple{Writer: &bytes.Buffer{}}, "persistable", "7:1001", "text")

		assert.ErrorIs(t, err, uidDomain.ErrPoolExhausted)
	})
}

func TestRunDecode(t *testing.T) {
	ctx := context.Background()
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Decode", ctx, "token").Return(uidDomain.UUIDv1(id), nil)

		var out bytes.Buffer
		err := RunDecode(ctx, mockUseCase, IOTuple{Writer: &out}, "token", "text")

		require.NoError(t, err)
		assert.Equal(t, "uuid-v1 6ba7b810-9dad-11d1-80b4-00c04fd430c8\n", out.String())
	})

	t.Run("Success_JSON", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Decode", ctx, "token").Return(uidDomain.UUIDv1(id), nil)

		var out bytes.Buffer
		require.NoError(t, RunDecode(ctx, mockUseCase, IOTuple{Writer: &out}, "token", "json"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, "uuid-v1", result["variant"])
		assert.Equal(t, id.String(), result["value"])
	})

	t.Run("Error_MalformedToken", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Decode", ctx, "bad").Return(nil, uidDomain.ErrMalformedToken)

		var out bytes.Buffer
		err := RunDecode(ctx, mockUseCase, IOTuple{Writer: &out}, "bad", "text")

		assert.ErrorIs(t, err, uidDomain.ErrMalformedToken)
		assert.Empty(t, out.String())
	})
}

func TestRunListVariants(t *testing.T) {
	variants := []uidDomain.Variant{uidDomain.VariantUUIDv1, uidDomain.VariantPersistable}

	t.Run("Success_Text", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Variants").Return(variants)

		var out bytes.Buffer
		require.NoError(t, RunListVariants(mockUseCase, IOTuple{Writer: &out}, "text"))

		assert.Contains(t, out.String(), "NAME")
		assert.Contains(t, out.String(), "uuid-v1")
		assert.Contains(t, out.String(), "1001")
	})

	t.Run("Success_JSON", func(t *testing.T) {
		mockUseCase := &uidMocks.MockUidUseCase{}
		mockUseCase.On("Variants").Return(variants)

		var out bytes.Buffer
		require.NoError(t, RunListVariants(mockUseCase, IOTuple{Writer: &out}, "json"))

		var result []variantOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Len(t, result, 2)
		assert.Equal(t, variantOutput{Name: "persistable", Tag: 9, Blocks: 2}, result[1])
	})
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("json"))
	assert.Error(t, validateFormat(""))
}
