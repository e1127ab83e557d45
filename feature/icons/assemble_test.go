package icons

import (
	"testing"

	"icon-builder/core/sde"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_ExcludesUnresolvableAndUnpublished(t *testing.T) {
	tables := testTables()
	tables.Types[200] = sde.TypeRecord{TypeID: 200, GroupID: 10, IconFileID: 1, Published: false}

	set, err := Assemble(tables, false, 0)
	require.NoError(t, err)

	assert.Contains(t, set, "101")
	assert.Contains(t, set, "102")
	assert.Contains(t, set, "105")
	assert.Contains(t, set, "skin-7")
	assert.NotContains(t, set, "103", "type without any icon reference")
	assert.NotContains(t, set, "200", "unpublished type")
	assert.Len(t, set, 4)
}

func TestAssemble_SkipSkins(t *testing.T) {
	set, err := Assemble(testTables(), true, 0)
	require.NoError(t, err)

	assert.NotContains(t, set, "skin-7")
	assert.Len(t, set, 3)
}

func TestAssemble_TestTypeID(t *testing.T) {
	set, err := Assemble(testTables(), false, 102)
	require.NoError(t, err)

	require.Len(t, set, 1)
	assert.Equal(t, "res:/dx9/model/ship/folder/40_64.png", set["102"].ResourceKey)
}

func TestAssemble_DuplicateCanonicalID(t *testing.T) {
	tables := testTables()
	// Two skin licenses sharing one material collide on the same canonical id.
	tables.Types[106] = sde.TypeRecord{TypeID: 106, GroupID: 20, Published: true}
	tables.SkinMaterials[106] = 7

	_, err := Assemble(tables, false, 0)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindData))
}
