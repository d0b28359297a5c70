package cleanup

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store/memstore"
)

func mustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func newFixture(t *testing.T) (*memstore.Store, *storage.MemoryStorage, Service) {
	t.Helper()
	ms := memstore.New()
	fs := storage.NewMemoryStorage()
	svc := NewService(&model.Repos{Store: ms, Files: fs}, &config.Config{})
	return ms, fs, svc
}

func deleted(path string, params map[string]string, body interface{}) *model.DocumentEvent {
	ev := &model.DocumentEvent{Path: path, Change: model.ChangeDeleted, Params: params}
	if body != nil {
		raw, _ := json.Marshal(body)
		ev.Before = raw
	}
	return ev
}

func TestDeleteCollectionCascade(t *testing.T) {
	ms, fs, svc := newFixture(t)
	ctx := context.Background()

	items := consts.CollectionItems("c1")
	require.NoError(t, ms.Set(ctx, items, "i1", model.CollectionItem{ID: "i1", CollectionID: "c1"}))
	require.NoError(t, ms.Set(ctx, items, "i2", model.CollectionItem{ID: "i2", CollectionID: "c1"}))
	require.NoError(t, ms.Set(ctx, consts.Activity, "a1",
		model.Activity{ID: "a1", UID: "u1", CollectionID: "c1"}))
	require.NoError(t, ms.Set(ctx, consts.Activity, "a2",
		model.Activity{ID: "a2", UID: "u1", CollectionID: "other"}))
	fs.Put("collection_images/c1/cover.jpg")

	coll := model.Collection{ID: "c1", UID: "u1",
		CoverImageURL: "https://cdn.example.com/collection_images/c1/cover.jpg"}
	ev := deleted("collections/c1", map[string]string{"collectionId": "c1"}, coll)

	require.NoError(t, svc.DeleteCollectionItems(ctx, ev))
	require.NoError(t, svc.DeleteCollectionActivity(ctx, ev))
	require.NoError(t, svc.DeleteCollectionCover(ctx, ev))

	assert.Equal(t, 0, ms.Count(items))
	assert.Equal(t, 1, ms.Count(consts.Activity))
	assert.False(t, fs.Has("collection_images/c1/cover.jpg"))
}

func TestDeleteReplacedCollectionCover(t *testing.T) {
	_, fs, svc := newFixture(t)
	ctx := context.Background()

	fs.Put("collection_images/c1/old.jpg")

	before := model.Collection{ID: "c1", CoverImageURL: "https://cdn.example.com/collection_images/c1/old.jpg"}
	after := model.Collection{ID: "c1", CoverImageURL: "https://cdn.example.com/collection_images/c1/new.jpg"}
	ev := &model.DocumentEvent{
		Path:   "collections/c1",
		Change: model.ChangeUpdated,
		Before: mustRaw(t, before),
		After:  mustRaw(t, after),
		Params: map[string]string{"collectionId": "c1"},
	}
	require.NoError(t, svc.DeleteReplacedCollectionCover(ctx, ev))
	assert.False(t, fs.Has("collection_images/c1/old.jpg"))

	// unchanged cover is left alone
	ev2 := &model.DocumentEvent{
		Path:   "collections/c1",
		Change: model.ChangeUpdated,
		Before: mustRaw(t, after),
		After:  mustRaw(t, after),
		Params: map[string]string{"collectionId": "c1"},
	}
	require.NoError(t, svc.DeleteReplacedCollectionCover(ctx, ev2))
	assert.Len(t, fs.Deleted, 1)
}

func TestDeletePostCascade(t *testing.T) {
	ms, fs, svc := newFixture(t)
	ctx := context.Background()

	likes := consts.PostLikes("p1")
	require.NoError(t, ms.Set(ctx, likes, "u2", map[string]string{"id": "u2"}))
	require.NoError(t, ms.Set(ctx, likes, "u3", map[string]string{"id": "u3"}))
	require.NoError(t, ms.Set(ctx, consts.UserLikes("u2"), "p1", map[string]string{"id": "p1"}))
	require.NoError(t, ms.Set(ctx, consts.UserLikes("u2"), "p9", map[string]string{"id": "p9"}))
	require.NoError(t, ms.Set(ctx, consts.PostComments("p1"), "cm1",
		model.Comment{ID: "cm1", PostID: "p1", CommentOwnerUID: "u2"}))
	require.NoError(t, ms.Set(ctx, consts.Activity, "a1",
		model.Activity{ID: "a1", UID: "u1", PostID: "p1"}))

	fs.Put("post_images/p1/thumb.jpg")
	fs.Put("post_videos/p1/clip.mp4")

	post := model.Post{
		ID:           "p1",
		User:         model.PostUser{ID: "u1"},
		ThumbnailURL: "https://cdn.example.com/post_images/p1/thumb.jpg",
		MediaURLs:    []string{"https://cdn.example.com/post_videos/p1/clip.mp4"},
		MediaType:    consts.MediaTypeVideo,
	}
	ev := deleted("posts/p1", map[string]string{"postId": "p1"}, post)

	require.NoError(t, svc.DeletePostLikes(ctx, ev))
	require.NoError(t, svc.DeletePostComments(ctx, ev))
	require.NoError(t, svc.DeletePostActivity(ctx, ev))
	require.NoError(t, svc.DeletePostMedia(ctx, ev))

	assert.Equal(t, 0, ms.Count(likes))
	assert.Equal(t, 0, ms.Count(consts.PostComments("p1")))
	assert.Equal(t, 0, ms.Count(consts.Activity))
	// the mirrored like is gone, the user's other likes survive
	assert.Equal(t, 1, ms.Count(consts.UserLikes("u2")))
	assert.False(t, fs.Has("post_images/p1/thumb.jpg"))
	assert.False(t, fs.Has("post_videos/p1/clip.mp4"))
}

func TestDeletePostWithoutLikesIsNoop(t *testing.T) {
	ms, _, svc := newFixture(t)
	ctx := context.Background()

	ev := deleted("posts/p1", map[string]string{"postId": "p1"},
		model.Post{ID: "p1", User: model.PostUser{ID: "u1"}})
	require.NoError(t, svc.DeletePostLikes(ctx, ev))
	assert.Equal(t, 0, ms.Deletes)
}

func TestDeleteUserRemovesOnlyProfileBlob(t *testing.T) {
	ms, fs, svc := newFixture(t)
	ctx := context.Background()

	// the user's content outlives the account on purpose
	require.NoError(t, ms.Set(ctx, consts.Posts, "p1",
		model.Post{ID: "p1", User: model.PostUser{ID: "u1"}}))
	fs.Put("profile_images/u1/me.jpg")

	user := model.User{ID: "u1", ProfileImageURL: "https://cdn.example.com/profile_images/u1/me.jpg"}
	ev := deleted("users/u1", map[string]string{"userId": "u1"}, user)
	require.NoError(t, svc.DeleteUserProfileImage(ctx, ev))

	assert.False(t, fs.Has("profile_images/u1/me.jpg"))
	assert.Equal(t, 1, ms.Count(consts.Posts))
	assert.Equal(t, 0, ms.Deletes)
}

func TestDeleteUserWithoutImage(t *testing.T) {
	_, fs, svc := newFixture(t)

	ev := deleted("users/u1", map[string]string{"userId": "u1"}, model.User{ID: "u1"})
	require.NoError(t, svc.DeleteUserProfileImage(context.Background(), ev))
	assert.Empty(t, fs.Deleted)
}
