package domain

import (
	"math"
	"time"
)

// Views are the flat JSON shapes handed to presentation layers.

type CategoryView struct {
	Id          CategoryId `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	SortOrder   int        `json:"sort_order"`
	Active      bool       `json:"is_active"`
	ImageCount  int        `json:"image_count"`
	CreatedAt   *string    `json:"created_at"`
	UpdatedAt   *string    `json:"updated_at"`
}

type ImageView struct {
	Id               ImageId        `json:"id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	Title            *string        `json:"title"`
	Description      *string        `json:"description"`
	DescriptionHTML  string         `json:"description_html,omitempty"`
	AltText          *string        `json:"alt_text"`
	ImageURL         string         `json:"image_url"`
	Width            *int           `json:"width"`
	Height           *int           `json:"height"`
	AspectRatio      *float64       `json:"aspect_ratio"`
	FileSize         *int64         `json:"file_size"`
	FileSizeMB       *float64       `json:"file_size_mb"`
	CameraMake       *string        `json:"camera_make"`
	CameraModel      *string        `json:"camera_model"`
	Lens             *string        `json:"lens"`
	Aperture         *string        `json:"aperture"`
	ShutterSpeed     *string        `json:"shutter_speed"`
	ISO              *string        `json:"iso"`
	FocalLength      *string        `json:"focal_length"`
	DateTaken        *string        `json:"date_taken"`
	Location         *string        `json:"location"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`
	SortOrder        int            `json:"sort_order"`
	Active           bool           `json:"is_active"`
	Featured         bool           `json:"is_featured"`
	Categories       []CategoryView `json:"categories"`
	CreatedAt        *string        `json:"created_at"`
	UpdatedAt        *string        `json:"updated_at"`
}

type BackupView struct {
	Id        string  `json:"id"`
	Filename  string  `json:"filename"`
	Path      string  `json:"path"`
	SizeBytes int64   `json:"size_bytes"`
	Size      string  `json:"size"`
	SizeMB    float64 `json:"size_mb"`
	Timestamp string  `json:"timestamp"`
}

const viewTimeLayout = "2006-01-02T15:04:05.999999"

func isoTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Format(viewTimeLayout)
	return &s
}

func (c *Category) View() CategoryView {
	return CategoryView{
		Id:          c.Id,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		Active:      c.Active,
		ImageCount:  c.ImageCount,
		CreatedAt:   isoTime(c.CreatedAt),
		UpdatedAt:   isoTime(c.UpdatedAt),
	}
}

func (i *Image) URL() string {
	return AssetURLPrefix + i.Filename
}

func (i *Image) View() ImageView {
	v := ImageView{
		Id:               i.Id,
		Filename:         i.Filename,
		OriginalFilename: i.OriginalFilename,
		Title:            i.Title,
		Description:      i.Description,
		AltText:          i.AltText,
		ImageURL:         i.URL(),
		Width:            i.Width,
		Height:           i.Height,
		FileSize:         i.FileSize,
		CameraMake:       i.CameraMake,
		CameraModel:      i.CameraModel,
		Lens:             i.Lens,
		Aperture:         i.Aperture,
		ShutterSpeed:     i.ShutterSpeed,
		ISO:              i.ISO,
		FocalLength:      i.FocalLength,
		Location:         i.Location,
		Latitude:         i.Latitude,
		Longitude:        i.Longitude,
		SortOrder:        i.SortOrder,
		Active:           i.Active,
		Featured:         i.Featured,
		Categories:       make([]CategoryView, 0, len(i.Categories)),
		CreatedAt:        isoTime(i.CreatedAt),
		UpdatedAt:        isoTime(i.UpdatedAt),
	}
	if i.Width != nil && i.Height != nil && *i.Height != 0 {
		ratio := float64(*i.Width) / float64(*i.Height)
		v.AspectRatio = &ratio
	}
	if i.FileSize != nil {
		mb := math.Round(float64(*i.FileSize)/(1024*1024)*100) / 100
		v.FileSizeMB = &mb
	}
	if i.DateTaken != nil {
		v.DateTaken = isoTime(*i.DateTaken)
	}
	for _, c := range i.Categories {
		v.Categories = append(v.Categories, c.View())
	}
	return v
}

func (b *BackupArtifact) View() BackupView {
	return BackupView{
		Id:        b.Id,
		Filename:  b.Filename,
		Path:      b.Path,
		SizeBytes: b.SizeBytes,
		Size:      formatMB(b.SizeMB()),
		SizeMB:    b.SizeMB(),
		Timestamp: b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
