package restaurant

import (
	"context"

	"github.com/pkg/errors"

	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store"
)

// collectionRef - empty marker document; the collection id doubles as
// the document id
type collectionRef struct{}

// handleItemCreated links a collection to the restaurant it saved. Only
// public restaurant references are indexed; the item id is the
// restaurant id for items of type "restaurant".
func handleItemCreated(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	var item model.CollectionItem
	if err := ev.DecodeSnapshot(&item); err != nil {
		return err
	}
	if item.PrivateMode || item.PostType != consts.PostTypeRestaurant {
		return nil
	}
	if item.CollectionID == "" {
		return errors.New("collection item missing collectionId")
	}

	restaurantID := ev.Params["itemId"]
	err := st.Set(ctx, consts.RestaurantCollections(restaurantID), item.CollectionID, collectionRef{})
	return errors.Wrapf(err, "unable to link collection %s to restaurant %s", item.CollectionID, restaurantID)
}

func handleItemDeleted(ctx context.Context, st store.Store, ev *model.DocumentEvent) error {
	var item model.CollectionItem
	if err := ev.DecodeSnapshot(&item); err != nil {
		return err
	}
	if item.PostType != consts.PostTypeRestaurant {
		return nil
	}
	if item.CollectionID == "" {
		return errors.New("collection item missing collectionId")
	}

	restaurantID := ev.Params["itemId"]
	err := st.Delete(ctx, consts.RestaurantCollections(restaurantID), item.CollectionID)
	return errors.Wrapf(err, "unable to unlink collection %s from restaurant %s", item.CollectionID, restaurantID)
}
