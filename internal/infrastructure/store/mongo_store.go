package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore maps each collection onto a MongoDB collection. The document id
// is stored as _id; natural order is insertion order for a plain collection.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

// ConnectMongo dials the cluster and verifies the primary is reachable.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, toBSONFilter(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, doc Document) (Document, error) {
	id := doc.ID()
	if id == "" {
		return nil, ErrMissingID
	}

	m := bson.M{"_id": id}
	for k, v := range doc {
		if k != "id" {
			m[k] = v
		}
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateID
		}
		return nil, err
	}
	return doc.Clone(), nil
}

func (s *MongoStore) UpdateOne(ctx context.Context, collection, id string, patch Document) (Document, error) {
	set := bson.M{}
	for k, v := range patch {
		if k != "id" {
			set[k] = v
		}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated bson.M
	err := s.db.Collection(collection).
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return fromBSON(updated), nil
}

func (s *MongoStore) DeleteOne(ctx context.Context, collection, id string) (bool, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func toBSONFilter(filter Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		if k == "id" {
			m["_id"] = v
			continue
		}
		m[k] = v
	}
	return m
}

// fromBSON turns driver types into the plain Go values the rest of the code expects.
func fromBSON(m bson.M) Document {
	doc := make(Document, len(m))
	for k, v := range m {
		if k == "_id" {
			doc["id"] = fmt.Sprint(normalizeBSON(v))
			continue
		}
		doc[k] = normalizeBSON(v)
	}
	return doc
}

func normalizeBSON(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalizeBSON(item)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalizeBSON(item)
		}
		return out
	case int32:
		return int64(t)
	default:
		return v
	}
}
