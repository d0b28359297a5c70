package restaurant

import (
	"context"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// Service maintains the reverse index of collections referencing a
// restaurant. Its subdocuments in turn drive the restaurant
// collectionCount counter rules.
type Service interface {
	HandleItemCreated(ctx context.Context, ev *model.DocumentEvent) error
	HandleItemDeleted(ctx context.Context, ev *model.DocumentEvent) error
}

type service struct {
	config *config.Config
	store  store.Store
}

// NewService create new restaurant service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config: conf,
		store:  repos.Store,
	}
}

func (s *service) HandleItemCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handleItemCreated(ctx, s.store, ev)
}

func (s *service) HandleItemDeleted(ctx context.Context, ev *model.DocumentEvent) error {
	return handleItemDeleted(ctx, s.store, ev)
}
