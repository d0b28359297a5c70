package notification

import (
	"context"
	"time"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/cache"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// Service writes inbox notifications for likes, comments and follows.
type Service interface {
	HandleLikeCreated(ctx context.Context, ev *model.DocumentEvent) error
	HandleCommentCreated(ctx context.Context, ev *model.DocumentEvent) error
	HandleFollowCreated(ctx context.Context, ev *model.DocumentEvent) error
}

type service struct {
	config *config.Config
	store  store.Store
	cache  *cache.Cache
	now    func() time.Time
}

// NewService create new notification service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config: conf,
		store:  repos.Store,
		cache:  repos.Cache,
		now:    time.Now,
	}
}

func (s *service) HandleLikeCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handleLikeCreated(ctx, s.store, s.cache, s.now, ev)
}

func (s *service) HandleCommentCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handleCommentCreated(ctx, s.store, s.cache, s.now, ev)
}

func (s *service) HandleFollowCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handleFollowCreated(ctx, s.store, s.cache, s.now, ev)
}
