package model

// UserStats - aggregate counters maintained by the stats service
type UserStats struct {
	Followers   int `json:"followers" bson:"followers"`
	Following   int `json:"following" bson:"following"`
	Posts       int `json:"posts" bson:"posts"`
	Collections int `json:"collections" bson:"collections"`
}

// User - canonical user document; the source of every denormalized
// username / fullname / profileImageUrl / privateMode copy elsewhere
type User struct {
	ID              string    `json:"id" bson:"id"`
	Username        string    `json:"username" bson:"username"`
	Fullname        string    `json:"fullname" bson:"fullname"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	PrivateMode     bool      `json:"privateMode" bson:"privateMode"`
	Stats           UserStats `json:"stats" bson:"stats"`
}
