// Package http provides HTTP handlers for encoding identifiers into tokens and back.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/uids/internal/httputil"
	uidDomain "github.com/allisson/uids/internal/uid/domain"
	"github.com/allisson/uids/internal/uid/http/dto"
	uidUseCase "github.com/allisson/uids/internal/uid/usecase"
	customValidation "github.com/allisson/uids/internal/validation"
)

// UidHandler handles HTTP requests for the identifier codec.
type UidHandler struct {
	uidUseCase   uidUseCase.UidUseCase
	batchMaxSize int
	logger       *slog.Logger
}

// NewUidHandler creates a new handler. batchMaxSize caps batch request items.
func NewUidHandler(useCase uidUseCase.UidUseCase, batchMaxSize int, logger *slog.Logger) *UidHandler {
	return &UidHandler{
		uidUseCase:   useCase,
		batchMaxSize: batchMaxSize,
		logger:       logger,
	}
}

// EncodeHandler turns a typed identifier into a token.
// POST /v1/uids/encode - Returns 200 OK with the token.
func (h *UidHandler) EncodeHandler(c *gin.Context) {
	var req dto.EncodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	uid, err := req.ToUid()
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	token, err := h.uidUseCase.Encode(c.Request.Context(), uid)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncodeResponse{
		Token:   token,
		Variant: uid.Variant().Name,
	})
}

// DecodeHandler validates a token and returns the identifier it carries.
// POST /v1/uids/decode - Returns 200 OK, or 422 for malformed or unknown tokens.
func (h *UidHandler) DecodeHandler(c *gin.Context) {
	var req dto.DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	uid, err := h.uidUseCase.Decode(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUidToDecodeResponse(uid))
}

// EncodeBatchHandler encodes several identifiers. Item failures are reported
// per item and do not fail the request.
// POST /v1/uids/encode/batch
func (h *UidHandler) EncodeBatchHandler(c *gin.Context) {
	var req dto.EncodeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.batchMaxSize); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	items := make([]dto.EncodeBatchItem, len(req.Items))
	uids := make([]uidDomain.Uid, 0, len(req.Items))
	positions := make([]int, 0, len(req.Items))

	for i := range req.Items {
		item := &req.Items[i]
		items[i].Variant = item.Variant

		if err := item.Validate(); err != nil {
			items[i].Error = customValidation.WrapValidationError(err).Error()
			continue
		}
		uid, err := item.ToUid()
		if err != nil {
			items[i].Error = err.Error()
			continue
		}

		uids = append(uids, uid)
		positions = append(positions, i)
	}

	if len(uids) > 0 {
		results, err := h.uidUseCase.EncodeBatch(c.Request.Context(), uids)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		for j, r := range results {
			if r.Err != nil {
				items[positions[j]].Error = r.Err.Error()
				continue
			}
			items[positions[j]].Token = r.Token
		}
	}

	c.JSON(http.StatusOK, dto.EncodeBatchResponse{Items: items})
}

// DecodeBatchHandler decodes several tokens.
// POST /v1/uids/decode/batch
func (h *UidHandler) DecodeBatchHandler(c *gin.Context) {
	var req dto.DecodeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.batchMaxSize); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	results, err := h.uidUseCase.DecodeBatch(c.Request.Context(), req.Tokens)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDecodeResults(results))
}

// ListVariantsHandler lists the registered variants.
// GET /v1/uids/variants
func (h *UidHandler) ListVariantsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapVariantsToListResponse(h.uidUseCase.Variants()))
}
