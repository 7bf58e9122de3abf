package domain

import "time"

// Image is one uploaded photograph. Filename is unique and is the only link
// between the row and the file in the asset directory.
type Image struct {
	Id               ImageId
	Filename         Filename
	OriginalFilename string
	Title            *string
	Description      *string
	AltText          *string

	Width    *int
	Height   *int
	FileSize *int64

	Exif

	Location  *string
	Latitude  *float64
	Longitude *float64

	Active    bool
	Featured  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time

	Categories []*Category // populated on reads
}

// Exif holds optional camera metadata. Every field may be nil.
type Exif struct {
	CameraMake   *string
	CameraModel  *string
	Lens         *string
	Aperture     *string
	ShutterSpeed *string
	ISO          *string
	FocalLength  *string
	DateTaken    *time.Time
}

// ImageCreationData is what a new row is built from.
type ImageCreationData struct {
	Filename         Filename
	OriginalFilename string
	Title            *string
	Description      *string
	AltText          *string
	Width            *int
	Height           *int
	FileSize         *int64
	Exif             Exif
	Latitude         *float64
	Longitude        *float64
	Active           bool
	SortOrder        int
	CategoryIds      []CategoryId
}

// ImageUpdate carries editable fields. Nil means "leave unchanged";
// an empty string clears the text field.
type ImageUpdate struct {
	Title       *string
	Description *string
	AltText     *string
	Location    *string
	Active      *bool
	Featured    *bool
	SortOrder   *int
}

func (u ImageUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.AltText == nil && u.Location == nil &&
		u.Active == nil && u.Featured == nil && u.SortOrder == nil
}

// ImageFilter narrows ListImages. Category matches a category name or slug;
// empty means all categories.
type ImageFilter struct {
	Category   CategoryName
	ActiveOnly bool
}

// UploadRequest is a single file handed to the image service.
type UploadRequest struct {
	OriginalFilename string
	TitlePrefix      string
	CategoryId       *CategoryId
}

// DeleteImageResult reports the outcome of a delete. The row is always gone
// when it is returned; file removal is best effort.
type DeleteImageResult struct {
	Id          ImageId
	Title       string
	Filename    Filename
	FileRemoved bool
	FileError   string
}
