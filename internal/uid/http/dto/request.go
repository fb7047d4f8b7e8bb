// Package dto provides data transfer objects for the identifier codec HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
	customValidation "github.com/allisson/uids/internal/validation"
)

// maxTokenLength bounds token input; the longest variant (2 blocks) needs 24 characters.
const maxTokenLength = 256

// EncodeRequest contains a typed identifier in textual form.
type EncodeRequest struct {
	Variant string `json:"variant"` // e.g. "uuid-v4", "persistable"
	Value   string `json:"value"`   // e.g. "7:1001" for persistable
}

// Validate checks if the encode request is valid.
func (r *EncodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Variant,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Value,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 128),
		),
	)
}

// ToUid parses the value for the requested variant.
func (r *EncodeRequest) ToUid() (uidDomain.Uid, error) {
	return uidDomain.ParseUid(r.Variant, r.Value)
}

// DecodeRequest contains a token to decode.
type DecodeRequest struct {
	Token string `json:"token"`
}

// Validate checks if the decode request is valid.
func (r *DecodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			validation.Length(1, maxTokenLength),
			customValidation.URLSafe,
		),
	)
}

// EncodeBatchRequest contains identifiers to encode in one call.
type EncodeBatchRequest struct {
	Items []EncodeRequest `json:"items"`
}

// Validate checks the batch size against maxItems. Item contents are validated
// per item so one bad item does not reject the batch.
func (r *EncodeBatchRequest) Validate(maxItems int) error {
	return validation.Errors{
		"items": validation.Validate(len(r.Items), validation.Required, validation.Max(maxItems)),
	}.Filter()
}

// DecodeBatchRequest contains tokens to decode in one call.
type DecodeBatchRequest struct {
	Tokens []string `json:"tokens"`
}

// Validate checks the batch size against maxItems.
func (r *DecodeBatchRequest) Validate(maxItems int) error {
	return validation.Errors{
		"tokens": validation.Validate(len(r.Tokens), validation.Required, validation.Max(maxItems)),
	}.Filter()
}
