package icons

import "sort"

// Category ids with special resolution behavior.
const (
	// CategorySkin types resolve through the skin material table.
	CategorySkin = 91
	// CategorySkinCrate types are skin-adjacent and follow the skip-skins
	// filter together with CategorySkin.
	CategorySkinCrate = 2118
)

// SourceKind identifies which table produced a descriptor's source reference.
type SourceKind string

const (
	// SourceIconFile is a direct icon asset reference.
	SourceIconFile SourceKind = "icon_file"
	// SourceGraphic is a graphics folder's default variant.
	SourceGraphic SourceKind = "graphic"
	// SourceSkinMaterial is a skin material icon.
	SourceSkinMaterial SourceKind = "skin_material"
)

// Descriptor is one resolved icon. Resolution is a pure function of the
// snapshot tables, so the same tables always yield the same descriptors.
type Descriptor struct {
	// CanonicalID is the stable identity the icon is tracked under across
	// runs: the type id, or a skin-qualified id.
	CanonicalID string `json:"canonical_id"`

	// TypeID is the type the icon belongs to.
	TypeID int `json:"type_id"`

	// CategoryID classifies the type (ship, module, skin, blueprint, ...).
	CategoryID int `json:"category_id"`

	// Source identifies the table the resource reference came from.
	Source SourceKind `json:"source"`

	// ResourceKey is the cache key the source bytes are fetched under.
	ResourceKey string `json:"resource_key"`

	// OutputPath is the icon's relative path inside produced artifacts.
	OutputPath string `json:"output_relative_path"`

	// Fingerprint is the SHA-256 hex digest of the resolved source bytes.
	// Empty until the fingerprint phase has run.
	Fingerprint string `json:"fingerprint"`
}

// Set is a run's full descriptor set keyed by canonical id.
type Set map[string]Descriptor

// Sorted returns the descriptors ordered by canonical id. Every emitted
// artifact and progress sequence uses this order for reproducible output.
func (s Set) Sorted() []Descriptor {
	out := make([]Descriptor, 0, len(s))
	for _, d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CanonicalID < out[j].CanonicalID
	})
	return out
}
