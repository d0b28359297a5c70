package model

// RestaurantStats - aggregate counters maintained by the stats service
type RestaurantStats struct {
	PostCount       int `json:"postCount" bson:"postCount"`
	CollectionCount int `json:"collectionCount" bson:"collectionCount"`
}

// Restaurant document
type Restaurant struct {
	ID    string          `json:"id" bson:"id"`
	Name  string          `json:"name,omitempty" bson:"name,omitempty"`
	Stats RestaurantStats `json:"stats" bson:"stats"`
}
