package entities

type Recipe struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	MealID       string     `gorm:"size:50;uniqueIndex;not null" json:"meal_id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Category     string     `gorm:"size:100" json:"category"`
	Area         string     `gorm:"size:100" json:"area"`
	Instructions string     `gorm:"type:text" json:"instructions"`
	ImageURL     string     `gorm:"size:500" json:"image_url,omitempty"`
	VideoURL     string     `gorm:"size:500" json:"video_url,omitempty"`
	Ingredients  StringList `gorm:"type:text;serializer:json" json:"ingredients"`
	Measures     StringList `gorm:"type:text;serializer:json" json:"measures"`
	Tags         StringList `gorm:"type:text;serializer:json" json:"tags"`

	Timestamp
}
