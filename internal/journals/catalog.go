package journals

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"publication-rewards/internal/common/validation"
)

//go:embed catalog.json
var catalogJSON []byte

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

// Catalog is the normalized, read-only journal table.
type Catalog struct {
	title    string
	version  string
	journals []Journal
}

type catalogDocument struct {
	Title    string    `json:"title"`
	Journals []Journal `json:"journals"`
}

// LoadCatalog builds the catalog from the embedded table.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(catalogJSON)
}

// ParseCatalog validates a catalog document against the catalog schema,
// decodes it and normalizes every row.
func ParseCatalog(data []byte) (*Catalog, error) {
	result, err := validation.ValidateJSON(catalogSchemaJSON, data)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("catalog does not match schema: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	sum := sha256.Sum256(data)
	return &Catalog{
		title:    doc.Title,
		version:  hex.EncodeToString(sum[:6]),
		journals: Normalize(doc.Journals),
	}, nil
}

func (c *Catalog) Title() string { return c.title }

// Version identifies the catalog content; it changes whenever the table does.
func (c *Catalog) Version() string { return c.version }

func (c *Catalog) Len() int { return len(c.journals) }

// All returns a copy of every row in catalog order.
func (c *Catalog) All() []Journal {
	out := make([]Journal, len(c.journals))
	copy(out, c.journals)
	return out
}

// Search filters the catalog by name and flags highlighted rows.
func (c *Catalog) Search(query string) []Row {
	return Rows(Filter(c.journals, query))
}
