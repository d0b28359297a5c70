// Package mongostore implements the document-store port on MongoDB.
//
// Slash collection paths map onto mongo collections by their last
// segment ("posts/p1/post-likes" lives in the "post-likes" collection);
// every document carries its parent collection path in "_parent" and a
// full-path "_id", so subcollections of different parents never collide.
package mongostore

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/foodiapp/foodi-triggers/store"
)

// mongo limits batched writes; stay under the classic 500 op ceiling
const maxBatchOps = 500

// Store - MongoDB-backed document store
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and returns a store.
func New(config *Config) (*Store, error) {
	clientOptions := options.Client().ApplyURI(config.Host).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(5 * time.Minute)

	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, errors.Wrap(err, "unable to connect to mongo")
	}

	if err := client.Ping(context.TODO(), nil); err != nil {
		return nil, errors.Wrap(err, "error connecting mongo")
	}

	return &Store{client: client, db: client.Database(config.DBName)}, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	return s.client.Disconnect(context.TODO())
}

// collName returns the mongo collection backing a slash collection path.
func collName(collection string) string {
	parts := strings.Split(collection, "/")
	return parts[len(parts)-1]
}

func docKey(collection, id string) string {
	return collection + "/" + id
}

func (s *Store) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := s.db.Collection(collName(collection)).
		FindOne(ctx, bson.M{"_id": docKey(collection, id)}).
		Decode(out)
	if err == mongo.ErrNoDocuments {
		return store.ErrNotFound
	}
	return errors.Wrapf(err, "unable to read %s/%s", collection, id)
}

func (s *Store) Set(ctx context.Context, collection, id string, doc interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "unable to marshal document")
	}
	fields := bson.M{}
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return errors.Wrap(err, "unable to unpack document")
	}
	fields["_id"] = docKey(collection, id)
	fields["_parent"] = collection

	opts := options.Replace().SetUpsert(true)
	_, err = s.db.Collection(collName(collection)).
		ReplaceOne(ctx, bson.M{"_id": docKey(collection, id)}, fields, opts)
	return errors.Wrapf(err, "unable to write %s/%s", collection, id)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	set := bson.M{}
	inc := bson.M{}
	for path, value := range fields {
		if increment, ok := value.(store.Increment); ok {
			inc[path] = increment.By
		} else {
			set[path] = value
		}
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(inc) > 0 {
		update["$inc"] = inc
	}
	if len(update) == 0 {
		return nil
	}

	res, err := s.db.Collection(collName(collection)).
		UpdateOne(ctx, bson.M{"_id": docKey(collection, id)}, update)
	if err != nil {
		return errors.Wrapf(err, "unable to update %s/%s", collection, id)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.Collection(collName(collection)).
		DeleteOne(ctx, bson.M{"_id": docKey(collection, id)})
	return errors.Wrapf(err, "unable to delete %s/%s", collection, id)
}

func (s *Store) Query(ctx context.Context, collection, field string, op store.Op, value interface{}) (store.Iterator, error) {
	filter := bson.M{"_parent": collection}
	switch op {
	case store.OpEqual:
		filter[field] = value
	case store.OpLess:
		filter[field] = bson.M{"$lt": value}
	default:
		return nil, errors.Errorf("mongostore: unsupported operator %q", op)
	}
	return s.find(ctx, collection, filter)
}

func (s *Store) List(ctx context.Context, collection string) (store.Iterator, error) {
	return s.find(ctx, collection, bson.M{"_parent": collection})
}

func (s *Store) find(ctx context.Context, collection string, filter bson.M) (store.Iterator, error) {
	// the driver pages the cursor in batches; fan-out loops never hold
	// the full result set in memory
	opts := options.Find().SetBatchSize(100)
	cur, err := s.db.Collection(collName(collection)).Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to query %s", collection)
	}
	return &iterator{cur: cur, parent: collection}, nil
}

func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

type iterator struct {
	cur    *mongo.Cursor
	parent string
	err    error
}

func (it *iterator) Next(ctx context.Context) bool {
	return it.cur.Next(ctx)
}

func (it *iterator) ID() string {
	var meta struct {
		ID string `bson:"_id"`
	}
	if err := bson.Unmarshal(it.cur.Current, &meta); err != nil {
		it.err = err
		return ""
	}
	return strings.TrimPrefix(meta.ID, it.parent+"/")
}

func (it *iterator) Decode(out interface{}) error {
	return it.cur.Decode(out)
}

func (it *iterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.cur.Err()
}

func (it *iterator) Close(ctx context.Context) error {
	return it.cur.Close(ctx)
}

type batchOp struct {
	coll string
	key  string
}

type batch struct {
	store *Store
	ops   []batchOp
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{coll: collName(collection), key: docKey(collection, id)})
}

func (b *batch) Len() int {
	return len(b.ops)
}

// Commit submits the deletes as unordered bulk writes, one per mongo
// collection, chunked at the per-batch op ceiling. Chunks commit
// sequentially; a failing chunk leaves earlier chunks applied.
func (b *batch) Commit(ctx context.Context) error {
	byColl := make(map[string][]mongo.WriteModel)
	for _, op := range b.ops {
		byColl[op.coll] = append(byColl[op.coll],
			mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": op.key}))
	}

	opts := options.BulkWrite().SetOrdered(false)
	for coll, models := range byColl {
		for start := 0; start < len(models); start += maxBatchOps {
			end := start + maxBatchOps
			if end > len(models) {
				end = len(models)
			}
			if _, err := b.store.db.Collection(coll).BulkWrite(ctx, models[start:end], opts); err != nil {
				return errors.Wrapf(err, "unable to commit delete batch on %s", coll)
			}
		}
	}
	b.ops = nil
	return nil
}
