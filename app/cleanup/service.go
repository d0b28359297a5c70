package cleanup

import (
	"context"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store"
)

// Service removes dependent documents and orphaned blobs after a parent
// document is deleted. Each method backs one independent trigger rule.
type Service interface {
	DeleteCollectionItems(ctx context.Context, ev *model.DocumentEvent) error
	DeleteCollectionActivity(ctx context.Context, ev *model.DocumentEvent) error
	DeleteCollectionCover(ctx context.Context, ev *model.DocumentEvent) error
	DeleteReplacedCollectionCover(ctx context.Context, ev *model.DocumentEvent) error
	DeletePostLikes(ctx context.Context, ev *model.DocumentEvent) error
	DeletePostComments(ctx context.Context, ev *model.DocumentEvent) error
	DeletePostActivity(ctx context.Context, ev *model.DocumentEvent) error
	DeletePostMedia(ctx context.Context, ev *model.DocumentEvent) error
	DeleteUserProfileImage(ctx context.Context, ev *model.DocumentEvent) error
}

type service struct {
	config *config.Config
	store  store.Store
	files  storage.FileStorage
}

// NewService create new cleanup service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config: conf,
		store:  repos.Store,
		files:  repos.Files,
	}
}

func (s *service) DeleteCollectionItems(ctx context.Context, ev *model.DocumentEvent) error {
	return deleteCollectionItems(ctx, s.store, ev)
}

func (s *service) DeleteCollectionActivity(ctx context.Context, ev *model.DocumentEvent) error {
	return deleteCollectionActivity(ctx, s.store, ev)
}

func (s *service) DeleteCollectionCover(ctx context.Context, ev *model.DocumentEvent) error {
	return deleteCollectionCover(s.files, ev)
}

func (s *service) DeleteReplacedCollectionCover(ctx context.Context, ev *model.DocumentEvent) error {
	return deleteReplacedCollectionCover(s.files, ev)
}

func (s *service) DeletePostLikes(ctx context.Context, ev *model.DocumentEvent) error {
	return deletePostLikes(ctx, s.store, ev)
}

func (s *service) DeletePostComments(ctx context.Context, ev *model.DocumentEvent) error {
	return deletePostComments(ctx, s.store, ev)
}

func (s *service) DeletePostActivity(ctx context.Context, ev *model.DocumentEvent) error {
	return deletePostActivity(ctx, s.store, ev)
}

func (s *service) DeletePostMedia(ctx context.Context, ev *model.DocumentEvent) error {
	return deletePostMedia(s.files, ev)
}

func (s *service) DeleteUserProfileImage(ctx context.Context, ev *model.DocumentEvent) error {
	return deleteUserProfileImage(s.files, ev)
}
