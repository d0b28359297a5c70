package stats

import (
	"context"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// Service maintains the aggregate counters kept on users, posts and
// restaurants. Every adjustment is a store-level atomic increment.
type Service interface {
	HandleLikeChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleCommentChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleRestaurantCollectionChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleRestaurantPostChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleUserPostChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleUserCollectionChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleFollowerChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleFollowingChanged(ctx context.Context, ev *model.DocumentEvent) error
}

type service struct {
	config *config.Config
	store  store.Store
}

// NewService create new stats service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config: conf,
		store:  repos.Store,
	}
}

func (s *service) HandleLikeChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleLikeChanged(ctx, s.store, ev)
}

func (s *service) HandleCommentChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleCommentChanged(ctx, s.store, ev)
}

func (s *service) HandleRestaurantCollectionChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleRestaurantCollectionChanged(ctx, s.store, ev)
}

func (s *service) HandleRestaurantPostChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleRestaurantPostChanged(ctx, s.store, ev)
}

func (s *service) HandleUserPostChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleUserPostChanged(ctx, s.store, ev)
}

func (s *service) HandleUserCollectionChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleUserCollectionChanged(ctx, s.store, ev)
}

func (s *service) HandleFollowerChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleFollowerChanged(ctx, s.store, ev)
}

func (s *service) HandleFollowingChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleFollowingChanged(ctx, s.store, ev)
}
