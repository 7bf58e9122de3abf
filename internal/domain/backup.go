package domain

import (
	"math"
	"time"
)

// BackupArtifact is a finished archive on local disk. It lives only as long
// as the process that created it.
type BackupArtifact struct {
	Id        string
	Filename  string
	Path      string
	SizeBytes int64
	CreatedAt time.Time
}

// SizeMB is the archive size in megabytes rounded to two decimals.
func (b *BackupArtifact) SizeMB() float64 {
	return math.Round(float64(b.SizeBytes)/(1024*1024)*100) / 100
}

const (
	BackupStatusCompleted = "completed"
	BackupStatusFailed    = "failed"

	BackupTypeLocal = "local"
)

// BackupLogEntry is a persisted record of a backup attempt.
type BackupLogEntry struct {
	Id           int64
	Filename     string
	BackupType   string
	FileSize     *int64
	Status       string
	ErrorMessage *string
	CreatedAt    time.Time
}
