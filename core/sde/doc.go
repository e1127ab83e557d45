// Package sde reads the periodically published static data export.
//
// The export is a zip archive of JSONL tables. Load keeps a local copy and
// only re-downloads when the published build number changes. Read functions
// parse the individual tables the icon pipeline consumes: types, group
// categories, icon files, graphics folders, and skin materials.
package sde
