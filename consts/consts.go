package consts

import "fmt"

// Top level collections.
const (
	Users         = "users"
	Posts         = "posts"
	Collections   = "collections"
	Restaurants   = "restaurants"
	Activity      = "activity"
	Notifications = "notifications"
	Followers     = "followers"
	Following     = "following"
)

// Trigger path templates. Wildcard segments are bound into the event
// params by the dispatcher.
const (
	PathUser                 = "users/{userId}"
	PathPost                 = "posts/{postId}"
	PathCollection           = "collections/{collectionId}"
	PathCollectionItem       = "collections/{collectionId}/items/{itemId}"
	PathPostLike             = "posts/{postId}/post-likes/{userId}"
	PathPostComment          = "posts/{postId}/post-comments/{commentId}"
	PathRestaurantCollection = "restaurants/{restaurantId}/collections/{collectionId}"
	PathFollower             = "followers/{userId}/user-followers/{followerId}"
	PathFollowing            = "following/{userId}/user-following/{followerId}"
)

// Post types.
const (
	PostTypeRestaurant = "restaurant"
	PostTypeAtHome     = "atHome"
	PostTypeOther      = "other"
)

// Media types.
const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// Activity type codes. Readers depend on these values, never reorder.
const (
	ActivityNewPost        = 0
	ActivityNewCollection  = 1
	ActivityNewItem        = 2
)

// Notification type codes.
const (
	NotificationLike    = 0
	NotificationComment = 1
	NotificationFollow  = 2
)

// Storage folder tokens used to resolve download URLs to object paths.
const (
	FolderProfileImages    = "profile_images"
	FolderPostImages       = "post_images"
	FolderPostVideos       = "post_videos"
	FolderCollectionImages = "collection_images"
)

// PostLikes returns the likes subcollection path of a post.
func PostLikes(postID string) string {
	return fmt.Sprintf("%s/%s/post-likes", Posts, postID)
}

// PostComments returns the comments subcollection path of a post.
func PostComments(postID string) string {
	return fmt.Sprintf("%s/%s/post-comments", Posts, postID)
}

// CollectionItems returns the items subcollection path of a collection.
func CollectionItems(collectionID string) string {
	return fmt.Sprintf("%s/%s/items", Collections, collectionID)
}

// RestaurantCollections returns the collections subcollection path of a restaurant.
func RestaurantCollections(restaurantID string) string {
	return fmt.Sprintf("%s/%s/collections", Restaurants, restaurantID)
}

// UserLikes returns the mirrored likes subcollection path of a user.
func UserLikes(userID string) string {
	return fmt.Sprintf("%s/%s/user-likes", Users, userID)
}

// UserNotifications returns the notification inbox path of a user.
func UserNotifications(userID string) string {
	return fmt.Sprintf("%s/%s/user-notifications", Notifications, userID)
}
