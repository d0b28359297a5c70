package model

// Collection document; owner fields are denormalized from the user
type Collection struct {
	ID              string `json:"id" bson:"id"`
	UID             string `json:"uid" bson:"uid"`
	Username        string `json:"username" bson:"username"`
	Fullname        string `json:"fullname,omitempty" bson:"fullname,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	CoverImageURL   string `json:"coverImageUrl,omitempty" bson:"coverImageUrl,omitempty"`
	Name            string `json:"name" bson:"name"`
	PrivateMode     bool   `json:"privateMode" bson:"privateMode"`
}

// CollectionItem - a post or restaurant reference placed into a collection
type CollectionItem struct {
	ID           string `json:"id" bson:"id"`
	CollectionID string `json:"collectionId" bson:"collectionId"`
	PostType     string `json:"postType" bson:"postType"`
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	PrivateMode  bool   `json:"privateMode" bson:"privateMode"`
}
