package icons

import (
	"icon-builder/core/sde"
)

// Assemble builds the full descriptor set for a run by resolving every
// eligible type record. When testTypeID is non-zero the set is restricted to
// that single type, used for isolated debugging of one icon.
//
// A canonical id collision is a data error: the snapshot is expected to
// guarantee uniqueness.
func Assemble(tables *sde.Tables, skipSkins bool, testTypeID int) (Set, error) {
	resolver := NewResolver(tables, skipSkins)
	set := make(Set, len(tables.Types))

	for typeID, record := range tables.Types {
		if testTypeID != 0 && typeID != testTypeID {
			continue
		}
		if !record.Published {
			continue
		}

		categoryID := tables.GroupCategories[record.GroupID]
		if skipSkins && (categoryID == CategorySkin || categoryID == CategorySkinCrate) {
			continue
		}

		descriptor, ok := resolver.Resolve(record)
		if !ok {
			continue
		}

		if existing, dup := set[descriptor.CanonicalID]; dup {
			return nil, errorf(KindData, "assemble",
				"canonical id %q resolved by both type %d and type %d",
				descriptor.CanonicalID, existing.TypeID, descriptor.TypeID)
		}
		set[descriptor.CanonicalID] = descriptor
	}

	return set, nil
}
