package models

// MenuItem represents one dish on the menu
type MenuItem struct {
	ID          int     `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64 `bson:"price" json:"price"`
	Category    string  `bson:"category,omitempty" json:"category,omitempty"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
	Available   bool    `bson:"available" json:"available"`
}
