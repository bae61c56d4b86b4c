package models

import "encoding/json"

// SearchPage es la forma mínima que necesitamos entender de una página
// de resultados del catálogo; los items se re-emiten tal cual llegaron.
type SearchPage struct {
	Page         int               `json:"page"`
	Results      []json.RawMessage `json:"results"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
}
