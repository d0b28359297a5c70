package model

// PostUser - denormalized owner snapshot embedded in a post at creation time
type PostUser struct {
	ID              string `json:"id" bson:"id"`
	Username        string `json:"username" bson:"username"`
	Fullname        string `json:"fullname,omitempty" bson:"fullname,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty" bson:"profileImageUrl,omitempty"`
	PrivateMode     bool   `json:"privateMode" bson:"privateMode"`
}

// PostRestaurant - restaurant reference carried by posts of type "restaurant"
type PostRestaurant struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// Recipe - recipe details carried by posts of type "atHome"
type Recipe struct {
	Name string `json:"name" bson:"name"`
}

// Post document
type Post struct {
	ID           string          `json:"id" bson:"id"`
	User         PostUser        `json:"user" bson:"user"`
	PostType     string          `json:"postType" bson:"postType"`
	Restaurant   *PostRestaurant `json:"restaurant,omitempty" bson:"restaurant,omitempty"`
	Recipe       *Recipe         `json:"recipe,omitempty" bson:"recipe,omitempty"`
	ThumbnailURL string          `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	MediaURLs    []string        `json:"mediaUrls,omitempty" bson:"mediaUrls,omitempty"`
	MediaType    string          `json:"mediaType,omitempty" bson:"mediaType,omitempty"`
	Likes        int             `json:"likes" bson:"likes"`
	CommentCount int             `json:"commentCount" bson:"commentCount"`
	PrivateMode  bool            `json:"privateMode" bson:"privateMode"`
}

// Comment - post comment subdocument
type Comment struct {
	ID              string `json:"id" bson:"id"`
	PostID          string `json:"postId" bson:"postId"`
	CommentOwnerUID string `json:"commentOwnerUid" bson:"commentOwnerUid"`
	Text            string `json:"text,omitempty" bson:"text,omitempty"`
}
