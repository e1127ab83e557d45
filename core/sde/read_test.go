package sde

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

// snapshotFixture builds an in-memory archive with the given JSONL members.
func snapshotFixture(t *testing.T, members map[string]string) *Snapshot {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return Open(zr, zap.NewNop())
}

func TestReadTypes(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"types.jsonl": `{"_key":101,"groupID":10,"iconID":1,"published":true}
{"_key":102,"groupID":10,"graphicID":40,"published":true}
{"_key":103,"groupID":10,"published":true}
{"_key":104,"groupID":1952,"published":true}
{"_key":105,"groupID":4040,"published":false}`,
	})

	types, err := s.ReadTypes()
	require.NoError(t, err)

	assert.Contains(t, types, 101)
	assert.Contains(t, types, 102)
	assert.NotContains(t, types, 103, "no icon, graphic, or skin license group")
	assert.Contains(t, types, 104, "skin license groups survive without references")
	assert.Contains(t, types, 105, "publication is filtered later, not here")

	assert.Equal(t, TypeRecord{TypeID: 101, GroupID: 10, IconFileID: 1, Published: true}, types[101])
	assert.False(t, types[105].Published)
}

func TestReadTypes_MalformedLine(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"types.jsonl": "{\"_key\":101,\"groupID\":10,\"iconID\":1}\nnot json\n",
	})

	_, err := s.ReadTypes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "types.jsonl")
}

func TestReadTypes_MissingMember(t *testing.T) {
	s := snapshotFixture(t, map[string]string{})

	_, err := s.ReadTypes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "types.jsonl")
}

func TestReadGroupCategories(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"groups.jsonl": `{"_key":10,"categoryID":6}
{"_key":20,"categoryID":91}
{"_key":30}`,
	})

	groups, err := s.ReadGroupCategories()
	require.NoError(t, err)

	assert.Equal(t, map[int]int{10: 6, 20: 91}, groups)
}

func TestReadIconFiles(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"icons.jsonl": `{"_key":1,"iconFile":"res:/ui/texture/icons/7_64_15.png"}
{"_key":2}`,
	})

	icons, err := s.ReadIconFiles()
	require.NoError(t, err)

	assert.Equal(t, map[int]string{1: "res:/ui/texture/icons/7_64_15.png"}, icons)
}

func TestReadGraphicsFolders(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"graphics.jsonl": `{"_key":40,"iconFolder":"res:/dx9/model/ship/folder/"}
{"_key":41}`,
	})

	graphics, err := s.ReadGraphicsFolders()
	require.NoError(t, err)

	require.Contains(t, graphics, 40)
	assert.NotContains(t, graphics, 41, "graphic without an icon folder")

	folder := graphics[40]
	assert.Equal(t, "res:/dx9/model/ship/folder", folder.Folder, "trailing slash is stripped")
	assert.Equal(t, []string{"40_64.png", "40_512.jpg"}, folder.Variants)
}

func TestReadSkinMaterials(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"skinLicenses.jsonl": `{"_key":104,"skinID":500}
{"_key":106,"skinID":501}
{"_key":107,"skinID":999}`,
		"skinMaterials.jsonl": `{"_key":500,"skinMaterialID":7}
{"_key":501,"skinMaterialID":8}`,
	})

	materials, err := s.ReadSkinMaterials()
	require.NoError(t, err)

	// License 107 points at a skin with no material row and drops out.
	assert.Equal(t, map[int]int{104: 7, 106: 8}, materials)
}

func TestReadAll(t *testing.T) {
	s := snapshotFixture(t, map[string]string{
		"types.jsonl":         `{"_key":101,"groupID":10,"iconID":1,"published":true}`,
		"groups.jsonl":        `{"_key":10,"categoryID":6}`,
		"icons.jsonl":         `{"_key":1,"iconFile":"res:/ui/texture/icons/7.png"}`,
		"graphics.jsonl":      `{"_key":40,"iconFolder":"res:/dx9/folder"}`,
		"skinLicenses.jsonl":  `{"_key":104,"skinID":500}`,
		"skinMaterials.jsonl": `{"_key":500,"skinMaterialID":7}`,
	})

	tables, err := s.ReadAll()
	require.NoError(t, err)

	assert.Len(t, tables.Types, 1)
	assert.Len(t, tables.GroupCategories, 1)
	assert.Len(t, tables.IconFiles, 1)
	assert.Len(t, tables.GraphicsFolders, 1)
	assert.Len(t, tables.SkinMaterials, 1)
}

func TestParseVersionLines(t *testing.T) {
	version, err := parseVersionLines(`{"_key":"other","buildNumber":1}
{"_key":"sde","buildNumber":2750000}`)
	require.NoError(t, err)
	assert.Equal(t, 2750000, version)

	_, err = parseVersionLines(`{"_key":"other","buildNumber":1}`)
	assert.Error(t, err)
}

func TestDefaultVariant(t *testing.T) {
	_, ok := GraphicsFolder{}.DefaultVariant()
	assert.False(t, ok)

	v, ok := GraphicsFolder{Variants: []string{"40_64.png", "icon.png"}}.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, "icon.png", v, "named icon variant wins over positional order")

	v, ok = GraphicsFolder{Variants: []string{"40_64.png", "40_512.jpg"}}.DefaultVariant()
	require.True(t, ok)
	assert.Equal(t, "40_64.png", v)
}
