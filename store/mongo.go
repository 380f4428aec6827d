package store

import (
	"context"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Mongo implements Store against a MongoDB database. Field-path writes use
// the server's atomic $set/$unset update operators, never read-then-write.
type Mongo struct {
	client *mongo.Client
	dbName string
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	return &Mongo{client: client, dbName: dbName}
}

func (m *Mongo) coll(name string) *mongo.Collection {
	return m.client.Database(m.dbName).Collection(name)
}

func (m *Mongo) Get(ctx context.Context, collection, key string) (bson.M, error) {
	var doc bson.M
	err := m.coll(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (m *Mongo) SetField(ctx context.Context, collection, key, fieldPath string, value interface{}) error {
	result, err := m.coll(collection).UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{fieldPath: value}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) UnsetField(ctx context.Context, collection, key, fieldPath string) error {
	// The $exists guard makes a missing path a NotFound instead of a
	// silent no-op.
	result, err := m.coll(collection).UpdateOne(ctx,
		bson.M{"_id": key, fieldPath: bson.M{"$exists": true}},
		bson.M{"$unset": bson.M{fieldPath: ""}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc interface{}) error {
	_, err := m.coll(collection).InsertOne(ctx, doc)
	return err
}

func (m *Mongo) FindOne(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	err := m.coll(collection).FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (m *Mongo) Find(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	cursor, err := m.coll(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return decodeCursor(ctx, cursor, out)
}

// decodeCursor drains the cursor into out, leaving a non-nil empty slice
// when nothing matched. cursor.All never touches a nil destination on zero
// results, which would serialize as null instead of [].
func decodeCursor(ctx context.Context, cursor *mongo.Cursor, out interface{}) error {
	if err := cursor.All(ctx, out); err != nil {
		return err
	}
	rv := reflect.ValueOf(out).Elem()
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}
	return nil
}

func (m *Mongo) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
	result, err := m.coll(collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

func (m *Mongo) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	result, err := m.coll(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
