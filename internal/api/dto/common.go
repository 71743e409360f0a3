// Package dto provides request and response types for the recommendation API.
// These types are used by huma to generate OpenAPI documentation and perform validation.
package dto

import "math"

// ListResponse is a generic list response.
type ListResponse[T any] struct {
	Items []T `json:"items" doc:"List of items"`
	Total int `json:"total" doc:"Number of items"`
}

// NewListResponse wraps items, substituting an empty slice for nil.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// finite maps values JSON cannot carry (NaN, ±Inf) to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
