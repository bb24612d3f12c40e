package journals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog()
	require.NoError(t, err)
	return c
}

func TestLoadCatalog(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, 33, c.Len())
	assert.Equal(t, "Recommended Journals by Average Score", c.Title())
	assert.Len(t, c.Version(), 12)

	all := c.All()
	assert.Equal(t, "Journal of Materials Science & Technology", all[0].Name)
	assert.Equal(t, "67 500", all[0].ExpectedReward)
	assert.Equal(t, Text("NOT AVAILABLE"), all[0].AcceptanceRate)
	assert.Equal(t, "NUCLEAR INSTRUMENTS & METHODS IN PHYSICS RESEARCH SECTION B-BEAM INTERACTIONS WITH MATERIALS AND ATOMS", all[32].Name)
}

func TestLoadCatalog_NoBlankCellsRemain(t *testing.T) {
	c := loadTestCatalog(t)

	missingPublisher := 0
	for _, j := range c.All() {
		for _, v := range []Value{j.AcceptanceRate, j.ImpactFactor2024, j.OpenAccessPolicy, j.Publisher} {
			assert.NotEqual(t, Text(""), v, "journal %q", j.Name)
		}
		if j.Publisher.IsMissing() {
			missingPublisher++
		}
		assert.NotEmpty(t, j.ExpectedReward)
	}
	assert.Equal(t, 3, missingPublisher)
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := loadTestCatalog(t)

	all := c.All()
	all[0].Name = "changed"

	assert.Equal(t, "Journal of Materials Science & Technology", c.All()[0].Name)
}

func TestCatalog_Search(t *testing.T) {
	c := loadTestCatalog(t)

	rows := c.Search("corrosion")
	require.Len(t, rows, 1)
	assert.Equal(t, "CORROSION SCIENCE", rows[0].Name)
	assert.Equal(t, "50 000", rows[0].ExpectedReward)
	assert.False(t, rows[0].Highlighted)

	assert.Len(t, c.Search(""), 33)
	assert.Len(t, c.Search("journal"), 9)
	assert.Empty(t, c.Search("does not exist"))

	highlighted := 0
	for _, r := range c.Search("") {
		if r.Highlighted {
			highlighted++
		}
	}
	assert.Equal(t, 2, highlighted)
}

func TestParseCatalog_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty list", `{"journals": []}`},
		{"missing field", `{"journals": [{"averageScore": 1, "journal": "x", "acceptanceRate": "", "if2024": 1, "openAccess": "No"}]}`},
		{"score as text", `{"journals": [{"averageScore": "1", "journal": "x", "acceptanceRate": "", "if2024": 1, "openAccess": "No", "publisher": ""}]}`},
		{"unknown column", `{"journals": [{"averageScore": 1, "journal": "x", "acceptanceRate": "", "if2024": 1, "openAccess": "No", "publisher": "", "extra": 1}]}`},
		{"not json", `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseCatalog_VersionTracksContent(t *testing.T) {
	a, err := ParseCatalog([]byte(`{"journals": [{"averageScore": 1, "journal": "A", "acceptanceRate": "", "if2024": 1, "openAccess": "No", "publisher": ""}]}`))
	require.NoError(t, err)
	b, err := ParseCatalog([]byte(`{"journals": [{"averageScore": 2, "journal": "A", "acceptanceRate": "", "if2024": 1, "openAccess": "No", "publisher": ""}]}`))
	require.NoError(t, err)

	assert.NotEqual(t, a.Version(), b.Version())
	assert.Equal(t, "20 000", a.All()[0].ExpectedReward)
}
