package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/schema"
)

// The uniqueness constraint on external refs must carry the same scope as the
// duplicate matcher: organization AND sales rep. An index scoped to the
// organization alone would collapse the same meeting recorded through two
// reps' integrations into one record.
func TestCallExternalRef_UniqueIndexScope(t *testing.T) {
	s, err := schema.Parse(&CallExternalRef{}, &sync.Map{}, schema.NamingStrategy{})
	assert.NoError(t, err)

	var unique *schema.Index
	for _, idx := range s.ParseIndexes() {
		if idx.Name == "uniq_org_rep_provider_external_id" {
			unique = idx
		}
	}
	if !assert.NotNil(t, unique, "external ref unique index is missing") {
		return
	}

	assert.Equal(t, "UNIQUE", unique.Class)

	columns := make([]string, 0, len(unique.Fields))
	for _, field := range unique.Fields {
		columns = append(columns, field.DBName)
	}
	assert.ElementsMatch(t,
		[]string{"organization_id", "sales_rep_id", "provider", "external_id"},
		columns)
}
