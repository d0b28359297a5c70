package model

import "time"

// Notification - per-recipient inbox record of another user's action.
// Never updated after creation; username/profileImageUrl are a live
// snapshot of the actor at emission time.
type Notification struct {
	ID              string    `json:"id" bson:"id"`
	UID             string    `json:"uid" bson:"uid"`
	Type            int       `json:"type" bson:"type"`
	Timestamp       time.Time `json:"timestamp" bson:"timestamp"`
	PostID          string    `json:"postId,omitempty" bson:"postId,omitempty"`
	PostThumbnail   string    `json:"postThumbnail,omitempty" bson:"postThumbnail,omitempty"`
	Username        string    `json:"username" bson:"username"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
}
