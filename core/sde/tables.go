package sde

// TypeRecord describes one item type as published in the static data export.
// IconFileID and GraphicID are zero when the type carries no such reference.
type TypeRecord struct {
	TypeID     int
	GroupID    int
	IconFileID int
	GraphicID  int
	Published  bool
}

// GraphicsFolder is a per-graphic folder of rendered variants. Variants is
// ordered; resolution always picks the same default variant.
type GraphicsFolder struct {
	Folder   string
	Variants []string
}

// DefaultVariant returns the variant file resolution uses, preferring one
// named "icon" over positional order.
func (g GraphicsFolder) DefaultVariant() (string, bool) {
	if len(g.Variants) == 0 {
		return "", false
	}
	for _, v := range g.Variants {
		if v == "icon.png" {
			return v, true
		}
	}
	return g.Variants[0], true
}

// Tables bundles every table the icon pipeline consumes. All maps are
// read-only once loaded.
type Tables struct {
	// Types maps type id to its record.
	Types map[int]TypeRecord
	// GroupCategories maps group id to category id.
	GroupCategories map[int]int
	// IconFiles maps icon file id to its resource path.
	IconFiles map[int]string
	// GraphicsFolders maps graphic id to its variant folder.
	GraphicsFolders map[int]GraphicsFolder
	// SkinMaterials maps a skin license type id to its material id.
	SkinMaterials map[int]int
}
