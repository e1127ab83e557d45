package icons

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"icon-builder/core/sde"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) (*fakeCache, *sde.Tables) {
	t.Helper()

	store := newFakeCache(t)
	store.put("res:/ui/texture/icons/101.png", []byte("alpha"))
	store.put("res:/dx9/model/folder/40_64.png", []byte("beta"))

	tables := &sde.Tables{
		Types: map[int]sde.TypeRecord{
			101: {TypeID: 101, GroupID: 10, IconFileID: 1, Published: true},
			102: {TypeID: 102, GroupID: 10, GraphicID: 40, Published: true},
			103: {TypeID: 103, GroupID: 10, Published: true},
		},
		GroupCategories: map[int]int{10: 6},
		IconFiles:       map[int]string{1: "res:/ui/texture/icons/101.png"},
		GraphicsFolders: map[int]sde.GraphicsFolder{
			40: {Folder: "res:/dx9/model/folder", Variants: []string{"40_64.png"}},
		},
	}
	return store, tables
}

func TestBuild_Lifecycle(t *testing.T) {
	store, tables := buildFixture(t)
	workDir := t.TempDir()
	archive := filepath.Join(t.TempDir(), "icons.zip")

	request := Request{
		Output:      BundleOutput{Path: archive},
		Tables:      tables,
		Store:       store,
		WorkDir:     workDir,
		SkipIfFresh: true,
	}

	// First run: everything is new.
	stats, err := Build(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Added)
	assert.Zero(t, stats.Removed)
	assert.Zero(t, stats.Warnings)
	assert.FileExists(t, archive)

	manifest, err := LoadManifest(workDir)
	require.NoError(t, err)
	assert.Len(t, manifest, 2)
	firstChecksum := stats.Checksum

	// Second run with identical data: fresh, so packaging is skipped.
	require.NoError(t, os.Remove(archive))
	stats, err = Build(context.Background(), request)
	require.NoError(t, err)
	assert.Zero(t, stats.Added)
	assert.Zero(t, stats.Removed)
	assert.Equal(t, firstChecksum, stats.Checksum)
	assert.NoFileExists(t, archive, "fresh run produces no artifact")

	// Third run after a type vanished from the data.
	delete(tables.Types, 102)
	stats, err = Build(context.Background(), request)
	require.NoError(t, err)
	assert.Zero(t, stats.Added)
	assert.Equal(t, 1, stats.Removed)
	assert.NotEqual(t, firstChecksum, stats.Checksum)
	assert.FileExists(t, archive)

	manifest, err = LoadManifest(workDir)
	require.NoError(t, err)
	assert.Len(t, manifest, 1)
	assert.Contains(t, manifest, "101")
}

func TestBuild_ForceRebuild(t *testing.T) {
	store, tables := buildFixture(t)
	workDir := t.TempDir()

	request := Request{
		Output:  BundleOutput{Path: filepath.Join(t.TempDir(), "icons.zip")},
		Tables:  tables,
		Store:   store,
		WorkDir: workDir,
	}

	_, err := Build(context.Background(), request)
	require.NoError(t, err)

	request.ForceRebuild = true
	stats, err := Build(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Added, "force rebuild treats every icon as added")
}

func TestBuild_InvalidOutput(t *testing.T) {
	store, tables := buildFixture(t)

	_, err := Build(context.Background(), Request{
		Output:  BundleOutput{},
		Tables:  tables,
		Store:   store,
		WorkDir: t.TempDir(),
	})

	require.Error(t, err)
	assert.True(t, IsKind(err, KindConfig))
}

func TestBuild_WarningsCounted(t *testing.T) {
	store, tables := buildFixture(t)
	store.failOn("res:/dx9/model/folder/40_64.png")

	stats, err := Build(context.Background(), Request{
		Output:  BundleOutput{Path: filepath.Join(t.TempDir(), "icons.zip")},
		Tables:  tables,
		Store:   store,
		WorkDir: t.TempDir(),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Warnings)
}

func TestBuild_ChecksumToStdoutKeepsManifest(t *testing.T) {
	store, tables := buildFixture(t)
	workDir := t.TempDir()

	_, err := Build(context.Background(), Request{
		Output:  BundleOutput{Path: filepath.Join(t.TempDir(), "icons.zip")},
		Tables:  tables,
		Store:   store,
		WorkDir: workDir,
	})
	require.NoError(t, err)

	before, err := os.ReadFile(filepath.Join(workDir, ManifestName))
	require.NoError(t, err)

	// The stdout checksum reports state for changed data but must not commit
	// a manifest it produced no artifact for.
	delete(tables.Types, 102)
	stats, err := Build(context.Background(), Request{
		Output:      ChecksumOutput{},
		Tables:      tables,
		Store:       store,
		WorkDir:     workDir,
		SkipIfFresh: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Removed)

	after, err := os.ReadFile(filepath.Join(workDir, ManifestName))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBuild_ChecksumToFile(t *testing.T) {
	store, tables := buildFixture(t)
	path := filepath.Join(t.TempDir(), "out", "checksum.txt")

	stats, err := Build(context.Background(), Request{
		Output:  ChecksumOutput{Path: path},
		Tables:  tables,
		Store:   store,
		WorkDir: t.TempDir(),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stats.Checksum, string(data))
}

func TestBuild_TestTypeID(t *testing.T) {
	store, tables := buildFixture(t)

	stats, err := Build(context.Background(), Request{
		Output:     BundleOutput{Path: filepath.Join(t.TempDir(), "icons.zip")},
		Tables:     tables,
		Store:      store,
		WorkDir:    t.TempDir(),
		TestTypeID: 101,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
}
