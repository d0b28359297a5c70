package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/cache"
	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// deliver writes the notification into the recipient's inbox and then
// announces it on the recipient's realtime channel. The publish is
// best-effort; a missed realtime nudge is recovered on the next inbox
// fetch.
func deliver(ctx context.Context, st store.Store, c *cache.Cache, recipient string, record model.Notification) error {
	if err := st.Set(ctx, consts.UserNotifications(recipient), record.ID, record); err != nil {
		return errors.Wrapf(err, "unable to write notification for user %s", recipient)
	}

	if c == nil {
		return nil
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	if err := c.Publish("notifications:"+recipient, string(payload)); err != nil {
		logrus.WithError(err).Debugf("unable to publish notification for user %s", recipient)
	}
	return nil
}

// actorSnapshot reads the actor's current display fields. Notifications
// carry a live snapshot; later profile edits do not rewrite them.
func actorSnapshot(ctx context.Context, st store.Store, uid string) (model.User, error) {
	var actor model.User
	err := st.Get(ctx, consts.Users, uid, &actor)
	return actor, errors.Wrapf(err, "unable to read acting user %s", uid)
}

func handleLikeCreated(ctx context.Context, st store.Store, c *cache.Cache, now func() time.Time, ev *model.DocumentEvent) error {
	likingUser := ev.Params["userId"]
	postID := ev.Params["postId"]

	var post model.Post
	if err := st.Get(ctx, consts.Posts, postID, &post); err != nil {
		return errors.Wrapf(err, "unable to read liked post %s", postID)
	}
	if post.User.ID == "" {
		return errors.New("post document missing user.id")
	}
	if post.User.ID == likingUser {
		return nil
	}

	actor, err := actorSnapshot(ctx, st, likingUser)
	if err != nil {
		return err
	}

	return deliver(ctx, st, c, post.User.ID, model.Notification{
		ID:              uuid.NewString(),
		UID:             likingUser,
		Type:            consts.NotificationLike,
		Timestamp:       now(),
		PostID:          postID,
		PostThumbnail:   post.ThumbnailURL,
		Username:        actor.Username,
		ProfileImageURL: actor.ProfileImageURL,
	})
}

func handleCommentCreated(ctx context.Context, st store.Store, c *cache.Cache, now func() time.Time, ev *model.DocumentEvent) error {
	var comment model.Comment
	if err := ev.DecodeSnapshot(&comment); err != nil {
		return err
	}
	if comment.CommentOwnerUID == "" || comment.PostID == "" {
		return errors.New("comment document missing commentOwnerUid or postId")
	}

	var post model.Post
	if err := st.Get(ctx, consts.Posts, comment.PostID, &post); err != nil {
		return errors.Wrapf(err, "unable to read commented post %s", comment.PostID)
	}
	if post.User.ID == "" {
		return errors.New("post document missing user.id")
	}
	if post.User.ID == comment.CommentOwnerUID {
		return nil
	}

	actor, err := actorSnapshot(ctx, st, comment.CommentOwnerUID)
	if err != nil {
		return err
	}

	return deliver(ctx, st, c, post.User.ID, model.Notification{
		ID:              uuid.NewString(),
		UID:             comment.CommentOwnerUID,
		Type:            consts.NotificationComment,
		Timestamp:       now(),
		PostID:          comment.PostID,
		PostThumbnail:   post.ThumbnailURL,
		Username:        actor.Username,
		ProfileImageURL: actor.ProfileImageURL,
	})
}

func handleFollowCreated(ctx context.Context, st store.Store, c *cache.Cache, now func() time.Time, ev *model.DocumentEvent) error {
	followedUser := ev.Params["userId"]
	follower := ev.Params["followerId"]
	if followedUser == follower {
		return nil
	}

	actor, err := actorSnapshot(ctx, st, follower)
	if err != nil {
		return err
	}

	return deliver(ctx, st, c, followedUser, model.Notification{
		ID:              uuid.NewString(),
		UID:             follower,
		Type:            consts.NotificationFollow,
		Timestamp:       now(),
		Username:        actor.Username,
		ProfileImageURL: actor.ProfileImageURL,
	})
}
