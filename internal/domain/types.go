package domain

type (
	ImageId    = int64
	CategoryId = int64

	Filename     = string
	CategoryName = string
)

// AllowedExtensions lists image extensions accepted for upload and reconciliation.
// Keys are lowercase and without the leading dot.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Archive entry names inside a backup. Restores depend on this layout.
const (
	ArchiveDatabaseEntry = "database/app.db"
	ArchiveAssetsEntry   = "assets"
)

const AssetURLPrefix = "/static/assets/"
