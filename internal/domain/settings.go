package domain

const (
	SettingFeaturedImageId   = "featured_image_id"
	SettingBackgroundImageId = "background_image_id"
)
