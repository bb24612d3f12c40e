// internal/workers/journals/search-journals/models.go
package searchjournals

import "publication-rewards/internal/journals"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Title          string         `json:"title"`
	CatalogVersion string         `json:"catalogVersion"`
	Query          string         `json:"query"`
	Count          int            `json:"count"`
	Rows           []journals.Row `json:"rows"`
	Cached         bool           `json:"cached"`
}
