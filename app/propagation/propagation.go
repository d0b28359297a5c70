package propagation

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store"
)

// target - one downstream mirror of a canonical user field
type target struct {
	collection string
	matchField string
	fieldPath  string
	current    func(it store.Iterator) (interface{}, error)
}

func collectionField(get func(model.Collection) interface{}) func(store.Iterator) (interface{}, error) {
	return func(it store.Iterator) (interface{}, error) {
		var c model.Collection
		if err := it.Decode(&c); err != nil {
			return nil, err
		}
		return get(c), nil
	}
}

func postField(get func(model.Post) interface{}) func(store.Iterator) (interface{}, error) {
	return func(it store.Iterator) (interface{}, error) {
		var p model.Post
		if err := it.Decode(&p); err != nil {
			return nil, err
		}
		return get(p), nil
	}
}

func activityField(get func(model.Activity) interface{}) func(store.Iterator) (interface{}, error) {
	return func(it store.Iterator) (interface{}, error) {
		var a model.Activity
		if err := it.Decode(&a); err != nil {
			return nil, err
		}
		return get(a), nil
	}
}

// propagationTargets declares, per canonical user field, every document
// set that mirrors it and the exact field path to rewrite there.
// Notifications are deliberately absent: they snapshot the actor at
// emission time and are never rewritten.
var propagationTargets = map[string][]target{
	"username": {
		{consts.Collections, "uid", "username",
			collectionField(func(c model.Collection) interface{} { return c.Username })},
		{consts.Posts, "user.id", "user.username",
			postField(func(p model.Post) interface{} { return p.User.Username })},
		{consts.Activity, "uid", "username",
			activityField(func(a model.Activity) interface{} { return a.Username })},
	},
	"fullname": {
		{consts.Collections, "uid", "fullname",
			collectionField(func(c model.Collection) interface{} { return c.Fullname })},
		{consts.Posts, "user.id", "user.fullname",
			postField(func(p model.Post) interface{} { return p.User.Fullname })},
	},
	"profileImageUrl": {
		{consts.Collections, "uid", "profileImageUrl",
			collectionField(func(c model.Collection) interface{} { return c.ProfileImageURL })},
		{consts.Posts, "user.id", "user.profileImageUrl",
			postField(func(p model.Post) interface{} { return p.User.ProfileImageURL })},
		{consts.Activity, "uid", "profileImageUrl",
			activityField(func(a model.Activity) interface{} { return a.ProfileImageURL })},
	},
	"privateMode": {
		{consts.Collections, "uid", "privateMode",
			collectionField(func(c model.Collection) interface{} { return c.PrivateMode })},
		{consts.Posts, "user.id", "privateMode",
			postField(func(p model.Post) interface{} { return p.PrivateMode })},
	},
}

func decodeUserChange(ev *model.DocumentEvent) (before, after model.User, err error) {
	if err = ev.DecodeBefore(&before); err != nil {
		return
	}
	if err = ev.DecodeAfter(&after); err != nil {
		return
	}
	if after.ID == "" {
		err = errors.New("user document missing id")
	}
	return
}

// propagateField fans the new value out to every mirror of the field.
// Documents already carrying the value are skipped; a failing document
// is logged and its siblings still proceed.
func propagateField(ctx context.Context, st store.Store, field, uid string, newValue interface{}) error {
	for _, tg := range propagationTargets[field] {
		it, err := st.Query(ctx, tg.collection, tg.matchField, store.OpEqual, uid)
		if err != nil {
			return errors.Wrapf(err, "unable to query %s for %s fan-out", tg.collection, field)
		}

		updated := 0
		for it.Next(ctx) {
			current, err := tg.current(it)
			if err != nil {
				logrus.WithError(err).Warnf("skipping undecodable %s/%s", tg.collection, it.ID())
				continue
			}
			if current == newValue {
				continue
			}
			if err := st.Update(ctx, tg.collection, it.ID(), store.Fields{tg.fieldPath: newValue}); err != nil {
				logrus.WithError(err).Warnf("unable to update %s/%s", tg.collection, it.ID())
				continue
			}
			updated++
		}
		if err := it.Err(); err != nil {
			it.Close(ctx)
			return errors.Wrapf(err, "fan-out over %s aborted", tg.collection)
		}
		it.Close(ctx)

		if updated > 0 {
			logrus.Debugf("propagated %s to %d documents in %s for user %s", field, updated, tg.collection, uid)
		}
	}
	return nil
}

func handleUsernameChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	before, after, err := decodeUserChange(ev)
	if err != nil {
		return err
	}
	if before.Username == after.Username {
		return nil
	}
	return propagateField(ctx, st, "username", after.ID, after.Username)
}

func handleFullnameChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	before, after, err := decodeUserChange(ev)
	if err != nil {
		return err
	}
	if before.Fullname == after.Fullname {
		return nil
	}
	return propagateField(ctx, st, "fullname", after.ID, after.Fullname)
}

func handleProfileImageChanged(ctx context.Context, st store.Store, files storage.FileStorage, ev *model.DocumentEvent) error {
	before, after, err := decodeUserChange(ev)
	if err != nil {
		return err
	}
	if before.ProfileImageURL == after.ProfileImageURL {
		return nil
	}
	if err := propagateField(ctx, st, "profileImageUrl", after.ID, after.ProfileImageURL); err != nil {
		return err
	}

	// the replaced image is orphaned once every mirror points at the
	// new one; removal is best-effort
	if path, ok := storage.ExtractFilePath(before.ProfileImageURL, consts.FolderProfileImages); ok {
		if err := files.DeleteFile(path); err != nil {
			logrus.WithError(err).Warnf("unable to delete replaced profile image %s", path)
		}
	}
	return nil
}

func handlePrivateModeChanged(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	before, after, err := decodeUserChange(ev)
	if err != nil {
		return err
	}
	if before.PrivateMode == after.PrivateMode {
		return nil
	}
	return propagateField(ctx, st, "privateMode", after.ID, after.PrivateMode)
}
