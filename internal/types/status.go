package types

// Status is a type for the lifecycle state of a row in the database.
// StatusDeleted is the soft-delete marker; queries exclude deleted rows
// unless they explicitly opt in.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
