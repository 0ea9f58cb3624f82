package docstore

import (
	"context"
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store where every collection maps to a MongoDB collection and
// the document id is stored as _id.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo wraps an already connected client and selects database name.
func NewMongo(client *mongo.Client, database string) *Mongo {
	return &Mongo{client: client, db: client.Database(database)}
}

func (m *Mongo) Get(ctx context.Context, collection, id string) (Document, error) {
	var raw bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromBSON(raw)
}

func (m *Mongo) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	q := bson.M{}
	for k, v := range filter {
		if k == "id" {
			k = "_id"
		}
		q[k] = v
	}
	cur, err := m.db.Collection(collection).Find(ctx, q)
	if err != nil {
		return nil, err
	}
	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, err
	}
	out := make([]Document, 0, len(raws))
	for _, raw := range raws {
		doc, err := fromBSON(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (m *Mongo) Put(ctx context.Context, collection, id string, doc Document) error {
	body := bson.M{}
	for k, v := range withID(doc, id) {
		body[k] = v
	}
	body["_id"] = id
	_, err := m.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, body, options.Replace().SetUpsert(true))
	return err
}

func (m *Mongo) Delete(ctx context.Context, collection, id string) error {
	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}

// fromBSON normalises a decoded BSON map into the same JSON shapes the other
// drivers return (float64 numbers, []any arrays).
func fromBSON(raw bson.M) (Document, error) {
	delete(raw, "_id")
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return decodeJSON(b)
}
