package propagation

import (
	"context"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store"
)

// Service keeps denormalized user fields in sync after a user edit.
type Service interface {
	HandleUsernameChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleFullnameChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandleProfileImageChanged(ctx context.Context, ev *model.DocumentEvent) error
	HandlePrivateModeChanged(ctx context.Context, ev *model.DocumentEvent) error
}

type service struct {
	config *config.Config
	store  store.Store
	files  storage.FileStorage
}

// NewService create new propagation service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config: conf,
		store:  repos.Store,
		files:  repos.Files,
	}
}

func (s *service) HandleUsernameChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleUsernameChanged(ctx, s.store, ev)
}

func (s *service) HandleFullnameChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleFullnameChanged(ctx, s.store, ev)
}

func (s *service) HandleProfileImageChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handleProfileImageChanged(ctx, s.store, s.files, ev)
}

func (s *service) HandlePrivateModeChanged(ctx context.Context, ev *model.DocumentEvent) error {
	return handlePrivateModeChanged(ctx, s.store, ev)
}
