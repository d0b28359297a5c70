package model

import (
	"github.com/foodiapp/foodi-triggers/cache"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store"
)

// Repos container to hold handles for the document store, file storage
// and cache the services work against
type Repos struct {
	Store store.Store
	Files storage.FileStorage
	Cache *cache.Cache
}
