package model

import "time"

// Activity - feed-facing record of a public user action. Append-only;
// swept after the retention window or cascade-deleted with its parent.
type Activity struct {
	ID              string    `json:"id" bson:"id"`
	UID             string    `json:"uid" bson:"uid"`
	Type            int       `json:"type" bson:"type"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
	Username        string    `json:"username,omitempty" bson:"username,omitempty"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty"`
	Name            string    `json:"name,omitempty" bson:"name,omitempty"`
	PostType        string    `json:"postType,omitempty" bson:"postType,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	PostID          string    `json:"postId,omitempty" bson:"postId,omitempty"`
	CollectionID    string    `json:"collectionId,omitempty" bson:"collectionId,omitempty"`
	RestaurantID    string    `json:"restaurantId,omitempty" bson:"restaurantId,omitempty"`
}
