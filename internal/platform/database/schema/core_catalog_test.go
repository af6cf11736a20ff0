// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/grimoire/internal/platform/database/schema"
)

/*
TestColumns_ProjectNullSpellAttributes checks that every table scans nine columns.
*/
func TestColumns_ProjectNullSpellAttributes(t *testing.T) {
	assert.Equal(t, "school", schema.CoreSpell.Columns()[5])
	assert.Equal(t, "NULL::text", schema.CoreFeat.Columns()[5])
	assert.Equal(t, "core.spell", schema.CoreSpell.Table)
	assert.Equal(t, "core.feat", schema.CoreFeat.Table)

	for _, table := range []schema.CatalogTable{schema.CoreRule, schema.CoreSpell, schema.CoreTrait, schema.CoreFeat} {
		assert.Len(t, table.Columns(), 9, table.Table)
	}
}
