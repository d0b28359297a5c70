package cleanup

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store"
)

// deleteBlob removes the object behind a download URL, if the URL
// references the given folder. Failures are logged, never surfaced: a
// leaked blob must not block the document-level cascade.
func deleteBlob(files storage.FileStorage, downloadURL, folder string) {
	if downloadURL == "" {
		return
	}
	path, ok := storage.ExtractFilePath(downloadURL, folder)
	if !ok {
		logrus.Warnf("url %s does not reference folder %s", downloadURL, folder)
		return
	}
	if err := files.DeleteFile(path); err != nil {
		logrus.WithError(err).Warnf("unable to delete blob %s", path)
	}
}

// deleteMatching batch-deletes every document of a collection matching
// field == value.
func deleteMatching(ctx context.Context, st store.Store, collection, field string, value interface{}) error {
	it, err := st.Query(ctx, collection, field, store.OpEqual, value)
	if err != nil {
		return errors.Wrapf(err, "unable to query %s", collection)
	}
	defer it.Close(ctx)

	batch := st.Batch()
	for it.Next(ctx) {
		batch.Delete(collection, it.ID())
	}
	if err := it.Err(); err != nil {
		return errors.Wrapf(err, "unable to walk %s", collection)
	}
	if batch.Len() == 0 {
		return nil
	}
	return batch.Commit(ctx)
}

// deleteAll batch-deletes every document of a subcollection.
func deleteAll(ctx context.Context, st store.Store, collection string) error {
	it, err := st.List(ctx, collection)
	if err != nil {
		return errors.Wrapf(err, "unable to list %s", collection)
	}
	defer it.Close(ctx)

	batch := st.Batch()
	for it.Next(ctx) {
		batch.Delete(collection, it.ID())
	}
	if err := it.Err(); err != nil {
		return errors.Wrapf(err, "unable to walk %s", collection)
	}
	if batch.Len() == 0 {
		return nil
	}
	return batch.Commit(ctx)
}

func deleteCollectionItems(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	return deleteAll(ctx, st, consts.CollectionItems(ev.Params["collectionId"]))
}

func deleteCollectionActivity(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	return deleteMatching(ctx, st, consts.Activity, "collectionId", ev.Params["collectionId"])
}

func deleteCollectionCover(files storage.FileStorage, ev *model.DocumentEvent) error {
	var collection model.Collection
	if err := ev.DecodeSnapshot(&collection); err != nil {
		return err
	}
	deleteBlob(files, collection.CoverImageURL, consts.FolderCollectionImages)
	return nil
}

// deleteReplacedCollectionCover drops the old cover blob when a
// collection is given a different one.
func deleteReplacedCollectionCover(files storage.FileStorage, ev *model.DocumentEvent) error {
	var before, after model.Collection
	if err := ev.DecodeBefore(&before); err != nil {
		return err
	}
	if err := ev.DecodeAfter(&after); err != nil {
		return err
	}
	if before.CoverImageURL == "" || before.CoverImageURL == after.CoverImageURL {
		return nil
	}
	deleteBlob(files, before.CoverImageURL, consts.FolderCollectionImages)
	return nil
}

// deletePostLikes removes the likes subcollection of a deleted post
// along with each liking user's mirrored user-likes record.
func deletePostLikes(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	postID := ev.Params["postId"]
	likes := consts.PostLikes(postID)

	it, err := st.List(ctx, likes)
	if err != nil {
		return errors.Wrapf(err, "unable to list %s", likes)
	}
	defer it.Close(ctx)

	batch := st.Batch()
	for it.Next(ctx) {
		likingUser := it.ID()
		batch.Delete(likes, likingUser)
		batch.Delete(consts.UserLikes(likingUser), postID)
	}
	if err := it.Err(); err != nil {
		return errors.Wrapf(err, "unable to walk %s", likes)
	}
	if batch.Len() == 0 {
		return nil
	}
	return batch.Commit(ctx)
}

func deletePostComments(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	return deleteAll(ctx, st, consts.PostComments(ev.Params["postId"]))
}

func deletePostActivity(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	return deleteMatching(ctx, st, consts.Activity, "postId", ev.Params["postId"])
}

func deletePostMedia(files storage.FileStorage, ev *model.DocumentEvent) error {
	var post model.Post
	if err := ev.DecodeSnapshot(&post); err != nil {
		return err
	}

	deleteBlob(files, post.ThumbnailURL, consts.FolderPostImages)

	folder := consts.FolderPostImages
	if post.MediaType == consts.MediaTypeVideo {
		folder = consts.FolderPostVideos
	}
	for _, mediaURL := range post.MediaURLs {
		deleteBlob(files, mediaURL, folder)
	}
	return nil
}

// deleteUserProfileImage removes only the profile image blob. Posts,
// collections and activity survive an account deletion on purpose.
func deleteUserProfileImage(files storage.FileStorage, ev *model.DocumentEvent) error {
	var user model.User
	if err := ev.DecodeSnapshot(&user); err != nil {
		return err
	}
	deleteBlob(files, user.ProfileImageURL, consts.FolderProfileImages)
	return nil
}
