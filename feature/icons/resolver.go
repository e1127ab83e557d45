package icons

import (
	"fmt"
	"strconv"

	"icon-builder/core/sde"
)

// Resolver maps type records to concrete source image references using a
// deterministic fallback chain.
type Resolver struct {
	tables    *sde.Tables
	skipSkins bool
}

// NewResolver creates a resolver over the given snapshot tables.
func NewResolver(tables *sde.Tables, skipSkins bool) *Resolver {
	return &Resolver{tables: tables, skipSkins: skipSkins}
}

// Resolve maps one record to its source image reference. The fallback chain
// is: explicit icon file, graphics folder default variant, skin material.
// Records matching none of these have no icon and are simply excluded;
// the second return value is false then.
func (r *Resolver) Resolve(record sde.TypeRecord) (Descriptor, bool) {
	categoryID := r.tables.GroupCategories[record.GroupID]

	if path, ok := r.tables.IconFiles[record.IconFileID]; record.IconFileID != 0 && ok {
		return descriptor(strconv.Itoa(record.TypeID), record, categoryID, SourceIconFile, path), true
	}

	if folder, ok := r.tables.GraphicsFolders[record.GraphicID]; record.GraphicID != 0 && ok {
		if variant, ok := folder.DefaultVariant(); ok {
			return descriptor(strconv.Itoa(record.TypeID), record, categoryID, SourceGraphic, folder.Folder+"/"+variant), true
		}
	}

	if categoryID == CategorySkin && !r.skipSkins {
		if materialID, ok := r.tables.SkinMaterials[record.TypeID]; ok {
			path := fmt.Sprintf("res:/ui/texture/classes/skins/icons/%d.png", materialID)
			// Skins are tracked by material, not by license type: every
			// license of the same material shares one icon.
			return descriptor(fmt.Sprintf("skin-%d", materialID), record, categoryID, SourceSkinMaterial, path), true
		}
	}

	return Descriptor{}, false
}

func descriptor(id string, record sde.TypeRecord, categoryID int, source SourceKind, resourceKey string) Descriptor {
	return Descriptor{
		CanonicalID: id,
		TypeID:      record.TypeID,
		CategoryID:  categoryID,
		Source:      source,
		ResourceKey: resourceKey,
		OutputPath:  id + ".png",
	}
}
