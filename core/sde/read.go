package sde

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// eachLine parses every JSONL line of an archive member into v and calls fn.
func eachLine[T any](s *Snapshot, member string, fn func(entry T)) error {
	f, err := s.archive.Open(member)
	if err != nil {
		return fmt.Errorf("snapshot is missing %s: %w", member, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", member, err)
	}

	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var entry T
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return fmt.Errorf("malformed line in %s: %w", member, err)
		}
		fn(entry)
	}
	return nil
}

// ReadTypes loads the type table, keeping only records that can ever resolve
// to an icon: an icon or graphic reference, or a skin license group.
func (s *Snapshot) ReadTypes() (map[int]TypeRecord, error) {
	s.logger.Debug("loading types")

	types := make(map[int]TypeRecord)
	err := eachLine(s, "types.jsonl", func(entry struct {
		Key       int  `json:"_key"`
		GroupID   int  `json:"groupID"`
		IconID    int  `json:"iconID"`
		GraphicID int  `json:"graphicID"`
		Published bool `json:"published"`
	}) {
		record := TypeRecord{
			TypeID:     entry.Key,
			GroupID:    entry.GroupID,
			IconFileID: entry.IconID,
			GraphicID:  entry.GraphicID,
			Published:  entry.Published,
		}
		if record.IconFileID != 0 || record.GraphicID != 0 || isSkinLicenseGroup(record.GroupID) {
			types[record.TypeID] = record
		}
	})
	if err != nil {
		return nil, err
	}
	return types, nil
}

// isSkinLicenseGroup reports whether the group holds skin license types,
// which carry no icon or graphic reference of their own.
func isSkinLicenseGroup(groupID int) bool {
	return (groupID >= 1950 && groupID <= 1955) || groupID == 4040
}

// ReadGroupCategories loads the group to category mapping.
func (s *Snapshot) ReadGroupCategories() (map[int]int, error) {
	s.logger.Debug("loading groups")

	groups := make(map[int]int)
	err := eachLine(s, "groups.jsonl", func(entry struct {
		Key        int `json:"_key"`
		CategoryID int `json:"categoryID"`
	}) {
		if entry.CategoryID != 0 {
			groups[entry.Key] = entry.CategoryID
		}
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// ReadIconFiles loads the icon file table.
func (s *Snapshot) ReadIconFiles() (map[int]string, error) {
	s.logger.Debug("loading icons")

	icons := make(map[int]string)
	err := eachLine(s, "icons.jsonl", func(entry struct {
		Key      int    `json:"_key"`
		IconFile string `json:"iconFile"`
	}) {
		if entry.IconFile != "" {
			icons[entry.Key] = entry.IconFile
		}
	})
	if err != nil {
		return nil, err
	}
	return icons, nil
}

// ReadGraphicsFolders loads the graphics folder table. Each folder gets the
// fixed variant list the render pipeline publishes.
func (s *Snapshot) ReadGraphicsFolders() (map[int]GraphicsFolder, error) {
	s.logger.Debug("loading graphics")

	graphics := make(map[int]GraphicsFolder)
	err := eachLine(s, "graphics.jsonl", func(entry struct {
		Key        int    `json:"_key"`
		IconFolder string `json:"iconFolder"`
	}) {
		if entry.IconFolder == "" {
			return
		}
		graphics[entry.Key] = GraphicsFolder{
			Folder: strings.TrimRight(entry.IconFolder, "/"),
			Variants: []string{
				fmt.Sprintf("%d_64.png", entry.Key),
				fmt.Sprintf("%d_512.jpg", entry.Key),
			},
		}
	})
	if err != nil {
		return nil, err
	}
	return graphics, nil
}

// ReadSkinMaterials loads the skin material mapping, joined across the skin
// license and skin material tables so the result is keyed by license type id.
func (s *Snapshot) ReadSkinMaterials() (map[int]int, error) {
	s.logger.Debug("loading skins")

	licenseSkins := make(map[int]int)
	err := eachLine(s, "skinLicenses.jsonl", func(entry struct {
		Key    int `json:"_key"`
		SkinID int `json:"skinID"`
	}) {
		if entry.SkinID != 0 {
			licenseSkins[entry.Key] = entry.SkinID
		}
	})
	if err != nil {
		return nil, err
	}

	skinMaterials := make(map[int]int)
	err = eachLine(s, "skinMaterials.jsonl", func(entry struct {
		Key            int `json:"_key"`
		SkinMaterialID int `json:"skinMaterialID"`
	}) {
		if entry.SkinMaterialID != 0 {
			skinMaterials[entry.Key] = entry.SkinMaterialID
		}
	})
	if err != nil {
		return nil, err
	}

	licenseMaterials := make(map[int]int)
	for license, skin := range licenseSkins {
		if material, ok := skinMaterials[skin]; ok {
			licenseMaterials[license] = material
		}
	}
	return licenseMaterials, nil
}

// ReadAll loads every table the pipeline consumes.
func (s *Snapshot) ReadAll() (*Tables, error) {
	types, err := s.ReadTypes()
	if err != nil {
		return nil, err
	}
	groups, err := s.ReadGroupCategories()
	if err != nil {
		return nil, err
	}
	icons, err := s.ReadIconFiles()
	if err != nil {
		return nil, err
	}
	graphics, err := s.ReadGraphicsFolders()
	if err != nil {
		return nil, err
	}
	skins, err := s.ReadSkinMaterials()
	if err != nil {
		return nil, err
	}

	s.logger.Info("snapshot tables loaded",
		zap.Int("types", len(types)),
		zap.Int("groups", len(groups)),
		zap.Int("icons", len(icons)),
		zap.Int("graphics", len(graphics)),
		zap.Int("skins", len(skins)))

	return &Tables{
		Types:           types,
		GroupCategories: groups,
		IconFiles:       icons,
		GraphicsFolders: graphics,
		SkinMaterials:   skins,
	}, nil
}
