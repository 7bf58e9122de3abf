package domain

import "fmt"

// AssignmentResult is returned by SetCategories.
type AssignmentResult struct {
	ImageId            ImageId
	Categories         []*Category
	SkippedCategoryIds []CategoryId
}

// BulkResult is returned by bulk category operations. Modified counts images
// whose association set changed; Skipped lists image ids that do not exist.
type BulkResult struct {
	CategoryId CategoryId
	Modified   int
	Skipped    []ImageId
}

// MaterializeResult is returned by MaterializeOrphans.
type MaterializeResult struct {
	Added     int
	Filenames []Filename
	Skipped   []Filename // already tracked by the time the insert ran
}

// BatchError reports a rolled back batch.
type BatchError struct {
	Attempted int
	Err       error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch of %d rolled back: %v", e.Attempted, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
