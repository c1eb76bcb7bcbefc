package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a generated coordination shared in the community gallery
type Post struct {
	ID        string    `bson:"_id" json:"id"`
	ImageURL  string    `bson:"image_url" json:"image_url"`
	ImageKey  string    `bson:"image_key,omitempty" json:"image_key,omitempty"` // Archive key, resolved to a URL on read
	Country   string    `bson:"country" json:"country"`
	Gender    string    `bson:"gender" json:"gender"`
	Age       int       `bson:"age" json:"age"`
	BodyShape string    `bson:"body_shape" json:"body_shape"`
	Color     string    `bson:"color" json:"color"`
	Theme     string    `bson:"theme" json:"theme"`
	Style     string    `bson:"style" json:"style"`
	Likes     int       `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NewPost builds a post for a freshly generated image. It always gets a new id and zero likes.
func NewPost(profile UserProfile, imageURL, imageKey string) Post {
	if imageURL == "" {
		imageURL = "N/A"
	}
	return Post{
		ID:        uuid.NewString(),
		ImageURL:  imageURL,
		ImageKey:  imageKey,
		Country:   profile.Country,
		Gender:    profile.Gender,
		Age:       profile.Age,
		BodyShape: profile.BodyShape,
		Color:     profile.Color,
		Theme:     profile.Theme,
		Style:     profile.DrawStyle,
		Likes:     0,
		CreatedAt: time.Now(),
	}
}
