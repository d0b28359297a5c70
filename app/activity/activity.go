package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// handlePostCreated writes a type-0 activity for a new public post.
// The record denormalizes everything the feed needs to render it.
func handlePostCreated(ctx context.Context, st store.Store, now func() time.Time, ev *model.DocumentEvent) error {
	var post model.Post
	if err := ev.DecodeSnapshot(&post); err != nil {
		return err
	}
	if post.User.ID == "" {
		return errors.New("post document missing user.id")
	}
	if post.User.PrivateMode {
		return nil
	}

	record := model.Activity{
		ID:              uuid.NewString(),
		UID:             post.User.ID,
		Type:            consts.ActivityNewPost,
		Timestamp:       now(),
		PostID:          post.ID,
		Image:           post.ThumbnailURL,
		Username:        post.User.Username,
		PostType:        post.PostType,
		ProfileImageURL: post.User.ProfileImageURL,
	}
	switch post.PostType {
	case consts.PostTypeRestaurant:
		if post.Restaurant == nil {
			return errors.New("restaurant post missing restaurant details")
		}
		record.Name = post.Restaurant.Name
		record.RestaurantID = post.Restaurant.ID
	case consts.PostTypeAtHome:
		if post.Recipe != nil {
			record.Name = post.Recipe.Name
		}
	}

	if err := st.Set(ctx, consts.Activity, record.ID, record); err != nil {
		return errors.Wrap(err, "unable to create post activity")
	}
	logrus.Debugf("activity %s created for post %s", record.ID, post.ID)
	return nil
}

func handleCollectionCreated(ctx context.Context, st store.Store, now func() time.Time, ev *model.DocumentEvent) error {
	var collection model.Collection
	if err := ev.DecodeSnapshot(&collection); err != nil {
		return err
	}
	if collection.UID == "" {
		return errors.New("collection document missing uid")
	}
	if collection.PrivateMode {
		return nil
	}

	record := model.Activity{
		ID:              uuid.NewString(),
		UID:             collection.UID,
		Type:            consts.ActivityNewCollection,
		Timestamp:       now(),
		CollectionID:    collection.ID,
		Image:           collection.CoverImageURL,
		Name:            collection.Name,
		Username:        collection.Username,
		ProfileImageURL: collection.ProfileImageURL,
	}
	if err := st.Set(ctx, consts.Activity, record.ID, record); err != nil {
		return errors.Wrap(err, "unable to create collection activity")
	}
	logrus.Debugf("activity %s created for collection %s", record.ID, collection.ID)
	return nil
}

// handleItemCreated writes a type-2 activity for an item added to a
// public collection. Display fields come from the parent collection;
// the item id lands in restaurantId or postId depending on what kind of
// reference was collected.
func handleItemCreated(ctx context.Context, st store.Store, now func() time.Time, ev *model.DocumentEvent) error {
	var item model.CollectionItem
	if err := ev.DecodeSnapshot(&item); err != nil {
		return err
	}
	if item.CollectionID == "" {
		return errors.New("collection item missing collectionId")
	}

	var parent model.Collection
	if err := st.Get(ctx, consts.Collections, item.CollectionID, &parent); err != nil {
		return errors.Wrapf(err, "unable to read parent collection %s", item.CollectionID)
	}
	if parent.PrivateMode {
		return nil
	}

	record := model.Activity{
		ID:              uuid.NewString(),
		UID:             parent.UID,
		Type:            consts.ActivityNewItem,
		Timestamp:       now(),
		CollectionID:    item.CollectionID,
		Image:           parent.CoverImageURL,
		Name:            item.Name,
		Username:        parent.Username,
		PostType:        item.PostType,
		ProfileImageURL: parent.ProfileImageURL,
	}
	switch item.PostType {
	case consts.PostTypeRestaurant:
		record.RestaurantID = item.ID
	case consts.PostTypeAtHome:
		record.PostID = item.ID
	}

	if err := st.Set(ctx, consts.Activity, record.ID, record); err != nil {
		return errors.Wrap(err, "unable to create collection item activity")
	}
	return nil
}

// sweepOlderThan is the nightly retention pass. Counters are not
// adjusted; activity has no aggregates.
func sweepOlderThan(ctx context.Context, st store.Store, cutoff time.Time) (int, error) {
	it, err := st.Query(ctx, consts.Activity, "timestamp", store.OpLess, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "unable to query expired activity")
	}
	defer it.Close(ctx)

	batch := st.Batch()
	for it.Next(ctx) {
		batch.Delete(consts.Activity, it.ID())
	}
	if err := it.Err(); err != nil {
		return 0, errors.Wrap(err, "unable to walk expired activity")
	}

	removed := batch.Len()
	if removed == 0 {
		return 0, nil
	}
	if err := batch.Commit(ctx); err != nil {
		return 0, errors.Wrap(err, "unable to delete expired activity")
	}
	logrus.Infof("retention sweep removed %d activity records older than %s", removed, cutoff.Format(time.RFC3339))
	return removed, nil
}
