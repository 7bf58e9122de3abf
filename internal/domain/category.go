package domain

import "time"

type Category struct {
	Id          CategoryId
	Name        CategoryName
	Slug        string // unique, derived from Name
	Description *string
	Active      bool
	SortOrder   int
	ImageCount  int // linked images, active or not
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CategoryCreationData struct {
	Name        CategoryName
	Slug        string // derived from Name when empty
	Description *string
	SortOrder   int
}

// DefaultCategories is the standard set created by CreateDefaults.
var DefaultCategories = []CategoryCreationData{
	{Name: "Portraits", Slug: "portraits", Description: strPtr("Portrait photography"), SortOrder: 1},
	{Name: "Landscapes", Slug: "landscapes", Description: strPtr("Landscape and nature photography"), SortOrder: 2},
	{Name: "Events", Slug: "events", Description: strPtr("Event and celebration photography"), SortOrder: 3},
	{Name: "Commercial", Slug: "commercial", Description: strPtr("Commercial and business photography"), SortOrder: 4},
	{Name: "Street Photography", Slug: "street-photography", Description: strPtr("Street and urban photography"), SortOrder: 5},
	{Name: "Nature", Slug: "nature", Description: strPtr("Wildlife and nature photography"), SortOrder: 6},
}

func strPtr(s string) *string { return &s }
