package core

import "time"

// Store defines the interface for build state persistence.
type Store interface {
	Open(path string) error
	Close() error
	InitSchema() error

	// Build operations
	CreateBuild(document string) (*Build, error)
	GetBuild(id string) (*Build, error)
	CompleteBuild(id string, status BuildStatus, errMsg string) error
	GetLatestBuild() (*Build, error)
	ListBuilds(limit int) ([]*Build, error)

	// Artifact operations
	RecordArtifact(a *ArtifactRecord) error
	GetArtifactsForBuild(buildID string) ([]*ArtifactRecord, error)
	GetLatestArtifact(componentID string) (*ArtifactRecord, error)

	// Content hash tracking
	GetContentHash(componentID string) (string, error)
	SetContentHash(componentID, hash string) error
	DeleteContentHash(componentID string) error
	ListContentHashes() (map[string]string, error)
}

// BuildStatus represents the status of a build.
type BuildStatus string

// Build status constants.
const (
	BuildStatusRunning   BuildStatus = "running"
	BuildStatusCompleted BuildStatus = "completed"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusCancelled BuildStatus = "cancelled"
)

// Build is one invocation of the compiler over a document.
type Build struct {
	ID          string
	Document    string
	Status      BuildStatus
	StartedAt   time.Time
	CompletedAt *time.Time
	Error       string
}

// ArtifactStatus represents the outcome for one component in a build.
type ArtifactStatus string

// Artifact status constants.
const (
	ArtifactStatusBuilt   ArtifactStatus = "built"
	ArtifactStatusSkipped ArtifactStatus = "skipped"
	ArtifactStatusFailed  ArtifactStatus = "failed"
)

// ArtifactRecord describes the files written for one component.
type ArtifactRecord struct {
	ID             string
	BuildID        string
	ComponentID    string
	ComponentName  string
	Status         ArtifactStatus
	ContentHash    string
	ModulePath     string
	StylesheetPath string
	Error          string
	DurationMS     int64
	CreatedAt      time.Time
}
