package activity

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
	"github.com/foodiapp/foodi-triggers/store/memstore"
)

func mustRaw(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func newFixture(t *testing.T) (*memstore.Store, Service) {
	t.Helper()
	ms := memstore.New()
	return ms, NewService(&model.Repos{Store: ms}, &config.Config{RetentionDays: 14})
}

func onlyActivity(t *testing.T, ms *memstore.Store) model.Activity {
	t.Helper()
	it, err := ms.List(context.Background(), consts.Activity)
	require.NoError(t, err)
	defer it.Close(context.Background())
	require.True(t, it.Next(context.Background()), "expected exactly one activity record")
	var record model.Activity
	require.NoError(t, it.Decode(&record))
	require.False(t, it.Next(context.Background()))
	return record
}

func TestRestaurantPostCreatesActivity(t *testing.T) {
	ms, svc := newFixture(t)
	ctx := context.Background()

	post := model.Post{
		ID: "p1",
		User: model.PostUser{
			ID:              "u1",
			Username:        "alice",
			ProfileImageURL: "https://cdn.example.com/profile_images/u1/me.jpg",
		},
		PostType:     consts.PostTypeRestaurant,
		Restaurant:   &model.PostRestaurant{ID: "r1", Name: "Nonna"},
		ThumbnailURL: "https://cdn.example.com/post_images/p1/thumb.jpg",
	}
	ev := &model.DocumentEvent{Path: "posts/p1", Change: model.ChangeCreated, After: mustRaw(t, post)}
	require.NoError(t, svc.HandlePostCreated(ctx, ev))

	record := onlyActivity(t, ms)
	assert.Equal(t, consts.ActivityNewPost, record.Type)
	assert.Equal(t, "u1", record.UID)
	assert.Equal(t, "p1", record.PostID)
	assert.Equal(t, "r1", record.RestaurantID)
	assert.Equal(t, "Nonna", record.Name)
	assert.Equal(t, "alice", record.Username)
	assert.Equal(t, post.ThumbnailURL, record.Image)
	assert.Equal(t, consts.PostTypeRestaurant, record.PostType)
	assert.False(t, record.Timestamp.IsZero())
}

func TestAtHomePostUsesRecipeName(t *testing.T) {
	ms, svc := newFixture(t)

	post := model.Post{
		ID:       "p1",
		User:     model.PostUser{ID: "u1", Username: "alice"},
		PostType: consts.PostTypeAtHome,
		Recipe:   &model.Recipe{Name: "Carbonara"},
	}
	ev := &model.DocumentEvent{Path: "posts/p1", Change: model.ChangeCreated, After: mustRaw(t, post)}
	require.NoError(t, svc.HandlePostCreated(context.Background(), ev))

	record := onlyActivity(t, ms)
	assert.Equal(t, "Carbonara", record.Name)
	assert.Empty(t, record.RestaurantID)
}

func TestPrivateOwnerPostEmitsNothing(t *testing.T) {
	ms, svc := newFixture(t)

	post := model.Post{ID: "p1", User: model.PostUser{ID: "u1", PrivateMode: true}}
	ev := &model.DocumentEvent{Path: "posts/p1", Change: model.ChangeCreated, After: mustRaw(t, post)}
	require.NoError(t, svc.HandlePostCreated(context.Background(), ev))
	assert.Equal(t, 0, ms.Count(consts.Activity))
}

func TestCollectionCreatedActivity(t *testing.T) {
	ms, svc := newFixture(t)

	coll := model.Collection{
		ID: "c1", UID: "u1", Username: "alice", Name: "Brunch spots",
		CoverImageURL: "https://cdn.example.com/collection_images/c1/cover.jpg",
	}
	ev := &model.DocumentEvent{Path: "collections/c1", Change: model.ChangeCreated, After: mustRaw(t, coll)}
	require.NoError(t, svc.HandleCollectionCreated(context.Background(), ev))

	record := onlyActivity(t, ms)
	assert.Equal(t, consts.ActivityNewCollection, record.Type)
	assert.Equal(t, "c1", record.CollectionID)
	assert.Equal(t, "Brunch spots", record.Name)
	assert.Equal(t, coll.CoverImageURL, record.Image)
}

func TestPrivateCollectionEmitsNothing(t *testing.T) {
	ms, svc := newFixture(t)

	coll := model.Collection{ID: "c1", UID: "u1", PrivateMode: true}
	ev := &model.DocumentEvent{Path: "collections/c1", Change: model.ChangeCreated, After: mustRaw(t, coll)}
	require.NoError(t, svc.HandleCollectionCreated(context.Background(), ev))
	assert.Equal(t, 0, ms.Count(consts.Activity))
}

func TestItemCreatedReferencesRestaurantOrPost(t *testing.T) {
	ms, svc := newFixture(t)
	ctx := context.Background()

	parent := model.Collection{ID: "c1", UID: "u1", Username: "alice", Name: "Brunch spots"}
	require.NoError(t, ms.Set(ctx, consts.Collections, "c1", parent))

	restaurantItem := model.CollectionItem{
		ID: "r1", CollectionID: "c1", PostType: consts.PostTypeRestaurant, Name: "Nonna",
	}
	ev := &model.DocumentEvent{
		Path:   "collections/c1/items/r1",
		Change: model.ChangeCreated,
		After:  mustRaw(t, restaurantItem),
		Params: map[string]string{"collectionId": "c1", "itemId": "r1"},
	}
	require.NoError(t, svc.HandleItemCreated(ctx, ev))

	record := onlyActivity(t, ms)
	assert.Equal(t, consts.ActivityNewItem, record.Type)
	assert.Equal(t, "u1", record.UID)
	assert.Equal(t, "r1", record.RestaurantID)
	assert.Empty(t, record.PostID)
	assert.Equal(t, "Nonna", record.Name)
	assert.Equal(t, "alice", record.Username)

	require.NoError(t, ms.Delete(ctx, consts.Activity, record.ID))

	postItem := model.CollectionItem{
		ID: "p7", CollectionID: "c1", PostType: consts.PostTypeAtHome, Name: "Carbonara",
	}
	ev2 := &model.DocumentEvent{
		Path:   "collections/c1/items/p7",
		Change: model.ChangeCreated,
		After:  mustRaw(t, postItem),
		Params: map[string]string{"collectionId": "c1", "itemId": "p7"},
	}
	require.NoError(t, svc.HandleItemCreated(ctx, ev2))

	record = onlyActivity(t, ms)
	assert.Equal(t, "p7", record.PostID)
	assert.Empty(t, record.RestaurantID)
}

func TestItemInPrivateCollectionEmitsNothing(t *testing.T) {
	ms, svc := newFixture(t)
	ctx := context.Background()

	require.NoError(t, ms.Set(ctx, consts.Collections, "c1",
		model.Collection{ID: "c1", UID: "u1", PrivateMode: true}))

	item := model.CollectionItem{ID: "r1", CollectionID: "c1", PostType: consts.PostTypeRestaurant}
	ev := &model.DocumentEvent{
		Path:   "collections/c1/items/r1",
		Change: model.ChangeCreated,
		After:  mustRaw(t, item),
		Params: map[string]string{"collectionId": "c1", "itemId": "r1"},
	}
	require.NoError(t, svc.HandleItemCreated(ctx, ev))
	assert.Equal(t, 0, ms.Count(consts.Activity))
}

func TestItemWithMissingParentFails(t *testing.T) {
	_, svc := newFixture(t)

	item := model.CollectionItem{ID: "r1", CollectionID: "gone", PostType: consts.PostTypeRestaurant}
	ev := &model.DocumentEvent{
		Path:   "collections/gone/items/r1",
		Change: model.ChangeCreated,
		After:  mustRaw(t, item),
		Params: map[string]string{"collectionId": "gone", "itemId": "r1"},
	}
	err := svc.HandleItemCreated(context.Background(), ev)
	assert.ErrorIs(t, errors.Cause(err), store.ErrNotFound)
}

func TestSweepRemovesOnlyExpiredRecords(t *testing.T) {
	ms, svc := newFixture(t)
	ctx := context.Background()
	cutoff := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ms.Set(ctx, consts.Activity, "old",
		model.Activity{ID: "old", UID: "u1", Timestamp: cutoff.Add(-time.Hour)}))
	require.NoError(t, ms.Set(ctx, consts.Activity, "edge",
		model.Activity{ID: "edge", UID: "u1", Timestamp: cutoff}))
	require.NoError(t, ms.Set(ctx, consts.Activity, "fresh",
		model.Activity{ID: "fresh", UID: "u1", Timestamp: cutoff.Add(time.Hour)}))

	removed, err := svc.SweepOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var record model.Activity
	assert.Error(t, ms.Get(ctx, consts.Activity, "old", &record))
	assert.NoError(t, ms.Get(ctx, consts.Activity, "edge", &record))
	assert.NoError(t, ms.Get(ctx, consts.Activity, "fresh", &record))
}

func TestSweepOnEmptyStore(t *testing.T) {
	_, svc := newFixture(t)
	removed, err := svc.SweepOlderThan(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
