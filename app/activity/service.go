package activity

import (
	"context"
	"time"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// Service writes feed activity for qualifying public creations and
// sweeps expired records.
type Service interface {
	HandlePostCreated(ctx context.Context, ev *model.DocumentEvent) error
	HandleCollectionCreated(ctx context.Context, ev *model.DocumentEvent) error
	HandleItemCreated(ctx context.Context, ev *model.DocumentEvent) error
	// SweepOlderThan deletes every activity record stamped before the
	// cutoff and returns how many were removed.
	SweepOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

type service struct {
	config *config.Config
	store  store.Store
	now    func() time.Time
}

// NewService create new activity service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config: conf,
		store:  repos.Store,
		now:    time.Now,
	}
}

func (s *service) HandlePostCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handlePostCreated(ctx, s.store, s.now, ev)
}

func (s *service) HandleCollectionCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handleCollectionCreated(ctx, s.store, s.now, ev)
}

func (s *service) HandleItemCreated(ctx context.Context, ev *model.DocumentEvent) error {
	return handleItemCreated(ctx, s.store, s.now, ev)
}

func (s *service) SweepOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	return sweepOlderThan(ctx, s.store, cutoff)
}
