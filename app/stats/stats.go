package stats

import (
	"context"

	"github.com/pkg/errors"

	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// delta maps the child event to the signed adjustment of the parent
// counter: +1 for a created subdocument, -1 for a deleted one.
func delta(change model.ChangeKind) (int, error) {
	switch change {
	case model.ChangeCreated:
		return 1, nil
	case model.ChangeDeleted:
		return -1, nil
	}
	return 0, errors.Errorf("no counter delta for change %q", change)
}

func handleLikeChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	postID := ev.Params["postId"]
	err = st.Update(ctx, consts.Posts, postID, store.Fields{"likes": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust likes of post %s", postID)
}

func handleCommentChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	// the comment body names its post, matching how comments are written
	var comment model.Comment
	if err := ev.DecodeSnapshot(&comment); err != nil {
		return err
	}
	if comment.PostID == "" {
		return errors.New("comment document missing postId")
	}
	err = st.Update(ctx, consts.Posts, comment.PostID, store.Fields{"commentCount": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust commentCount of post %s", comment.PostID)
}

func handleRestaurantCollectionChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	restaurantID := ev.Params["restaurantId"]
	err = st.Update(ctx, consts.Restaurants, restaurantID,
		store.Fields{"stats.collectionCount": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust collectionCount of restaurant %s", restaurantID)
}

// handleRestaurantPostChanged adjusts a restaurant's post count when a
// public restaurant post appears or disappears. The privateMode gate is
// the same on both directions, so a private post never moves the
// counter either way.
func handleRestaurantPostChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	var post model.Post
	if err := ev.DecodeSnapshot(&post); err != nil {
		return err
	}
	if post.PrivateMode || post.PostType != consts.PostTypeRestaurant {
		return nil
	}
	if post.Restaurant == nil || post.Restaurant.ID == "" {
		return errors.New("restaurant post missing restaurant.id")
	}
	err = st.Update(ctx, consts.Restaurants, post.Restaurant.ID,
		store.Fields{"stats.postCount": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust postCount of restaurant %s", post.Restaurant.ID)
}

func handleUserPostChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	var post model.Post
	if err := ev.DecodeSnapshot(&post); err != nil {
		return err
	}
	if post.User.ID == "" {
		return errors.New("post document missing user.id")
	}
	err = st.Update(ctx, consts.Users, post.User.ID, store.Fields{"stats.posts": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust post count of user %s", post.User.ID)
}

func handleUserCollectionChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	var collection model.Collection
	if err := ev.DecodeSnapshot(&collection); err != nil {
		return err
	}
	if collection.UID == "" {
		return errors.New("collection document missing uid")
	}
	err = st.Update(ctx, consts.Users, collection.UID, store.Fields{"stats.collections": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust collection count of user %s", collection.UID)
}

func handleFollowerChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	uid := ev.Params["userId"]
	err = st.Update(ctx, consts.Users, uid, store.Fields{"stats.followers": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust follower count of user %s", uid)
}

func handleFollowingChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	d, err := delta(ev.Change)
	if err != nil {
		return err
	}
	uid := ev.Params["userId"]
	err = st.Update(ctx, consts.Users, uid, store.Fields{"stats.following": store.Inc(d)})
	return errors.Wrapf(err, "unable to adjust following count of user %s", uid)
}
