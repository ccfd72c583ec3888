package gateway

import (
	"context"

	"github.com/gogotex/usergateway/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCollection implements Collection on a MongoDB collection.
// No schema or index is created; identity comes from the driver/server (_id).
// Required fields are checked client side, before anything is sent.
type MongoCollection[T any] struct {
	col      *mongo.Collection
	required []string
}

func NewMongoCollection[T any](col *mongo.Collection, required ...string) *MongoCollection[T] {
	return &MongoCollection[T]{col: col, required: required}
}

func (m *MongoCollection[T]) Insert(ctx context.Context, doc T) (T, error) {
	var stored T
	d, err := toDocument(doc)
	if err != nil {
		return stored, err
	}
	if err := checkRequired(d, m.required); err != nil {
		return stored, err
	}
	res, err := m.col.InsertOne(ctx, d)
	if err != nil {
		return stored, err
	}
	if err := m.col.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&stored); err != nil {
		// the write went through; answer with what was sent instead of failing it
		logger.Warnf("%s: read back of %v failed, returning submitted document: %v", m.col.Name(), res.InsertedID, err)
		return submitted[T](d, res.InsertedID)
	}
	return stored, nil
}

// submitted rebuilds the inserted document from the encoded payload and the assigned _id.
func submitted[T any](d bson.D, id interface{}) (T, error) {
	var out T
	if _, ok := lookup(d, "_id"); !ok {
		d = append(bson.D{{Key: "_id", Value: id}}, d...)
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return out, err
	}
	err = bson.Unmarshal(raw, &out)
	return out, err
}

func (m *MongoCollection[T]) FindAll(ctx context.Context) ([]T, error) {
	cur, err := m.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []T{}
	for cur.Next(ctx) {
		var d T
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
