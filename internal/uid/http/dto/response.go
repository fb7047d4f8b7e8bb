package dto

import (
	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// EncodeResponse represents an encoded identifier.
type EncodeResponse struct {
	Token   string `json:"token"`
	Variant string `json:"variant"`
}

// DecodeResponse represents a decoded identifier in textual form.
type DecodeResponse struct {
	Variant string `json:"variant"`
	Value   string `json:"value"`
}

// MapUidToDecodeResponse converts a decoded identifier into its response form.
func MapUidToDecodeResponse(uid uidDomain.Uid) DecodeResponse {
	return DecodeResponse{
		Variant: uid.Variant().Name,
		Value:   uidDomain.FormatUid(uid),
	}
}

// EncodeBatchItem is the outcome of one batch encode item. Exactly one of
// Token or Error is set.
type EncodeBatchItem struct {
	Token   string `json:"token,omitempty"`
	Variant string `json:"variant"`
	Error   string `json:"error,omitempty"`
}

// EncodeBatchResponse lists item outcomes in request order.
type EncodeBatchResponse struct {
	Items []EncodeBatchItem `json:"items"`
}

// DecodeBatchItem is the outcome of one batch decode item.
type DecodeBatchItem struct {
	Variant string `json:"variant,omitempty"`
	Value   string `json:"value,omitempty"`
	Error   string `json:"error,omitempty"`
}

// DecodeBatchResponse lists item outcomes in request order.
type DecodeBatchResponse struct {
	Items []DecodeBatchItem `json:"items"`
}

// MapDecodeResults converts use case results into response items.
func MapDecodeResults(results []uidDomain.DecodeResult) DecodeBatchResponse {
	items := make([]DecodeBatchItem, len(results))
	for i, r := range results {
		if r.Err != nil {
			items[i] = DecodeBatchItem{Error: r.Err.Error()}
			continue
		}
		decoded := MapUidToDecodeResponse(r.Uid)
		items[i] = DecodeBatchItem{Variant: decoded.Variant, Value: decoded.Value}
	}
	return DecodeBatchResponse{Items: items}
}

// VariantResponse describes a registered variant.
type VariantResponse struct {
	Name        string `json:"name"`
	Tag         uint8  `json:"tag"`
	Blocks      int    `json:"blocks"`
	TokenLength int    `json:"token_length"`
}

// ListVariantsResponse lists registered variants in registration order.
type ListVariantsResponse struct {
	Data []VariantResponse `json:"data"`
}

// MapVariantsToListResponse converts registered variants into a list response.
func MapVariantsToListResponse(variants []uidDomain.Variant) ListVariantsResponse {
	data := make([]VariantResponse, 0, len(variants))
	for _, v := range variants {
		data = append(data, VariantResponse{
			Name:        v.Name,
			Tag:         v.Tag,
			Blocks:      v.Blocks,
			TokenLength: uidDomain.TokenLength(v.Blocks),
		})
	}
	return ListVariantsResponse{Data: data}
}
