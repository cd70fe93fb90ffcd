package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"literasi-backend/internal/database"
)

// Mongo maps each collection onto a MongoDB collection. Documents are keyed by
// the string form of their ID and stamped with a _seq insertion counter so
// that ordering does not depend on natural order.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database

	seqMu   sync.Mutex
	lastSeq int64
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	return &Mongo{client: client, db: client.Database(dbName)}
}

func OpenMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	client, err := database.NewMongoClient(ctx, uri)
	if err != nil {
		return nil, err
	}
	return NewMongo(client, dbName), nil
}

func (m *Mongo) nextSeq() int64 {
	m.seqMu.Lock()
	defer m.seqMu.Unlock()
	seq := time.Now().UnixNano()
	if seq <= m.lastSeq {
		seq = m.lastSeq + 1
	}
	m.lastSeq = seq
	return seq
}

func (m *Mongo) Insert(ctx context.Context, collection string, doc any) (ID, error) {
	body, err := toBody(doc)
	if err != nil {
		return ID{}, err
	}
	id := NewID()
	body["_id"] = id.String()
	body["_seq"] = m.nextSeq()

	if _, err := m.db.Collection(collection).InsertOne(ctx, body); err != nil {
		return ID{}, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

func (m *Mongo) Get(ctx context.Context, collection string, id ID, out any) error {
	var doc bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	_, data, err := stripMongoDoc(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (m *Mongo) Find(ctx context.Context, collection string, q Query) ([]Record, error) {
	direction := 1
	if q.Newest {
		direction = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "_seq", Value: direction}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := m.db.Collection(collection).Find(ctx, mongoFilter(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		id, data, err := stripMongoDoc(doc)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{ID: id, Data: data})
	}
	return records, nil
}

func (m *Mongo) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	count, err := m.db.Collection(collection).CountDocuments(ctx, mongoFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}

func (m *Mongo) Update(ctx context.Context, collection string, id ID, set map[string]any) error {
	res, err := m.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": normalizeSet(set)},
	)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) CompareAndSet(ctx context.Context, collection string, id ID, expect Filter, set map[string]any) error {
	filter := mongoFilter(expect)
	filter["_id"] = id.String()

	coll := m.db.Collection(collection)
	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": normalizeSet(set)})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := coll.CountDocuments(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("failed to check %s/%s: %w", collection, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}

func (m *Mongo) Collections(ctx context.Context, limit int) ([]string, error) {
	names, err := m.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func mongoFilter(filter Filter) bson.M {
	out := bson.M{}
	eq, in := filter.split()
	for k, v := range eq {
		out[k] = v
	}
	for k, values := range in {
		out[k] = bson.M{"$in": values}
	}
	return out
}

// stripMongoDoc removes the bookkeeping fields and re-encodes the body as JSON.
func stripMongoDoc(doc bson.M) (ID, []byte, error) {
	raw, _ := doc["_id"].(string)
	id, err := ParseID(raw)
	if err != nil {
		return ID{}, nil, err
	}
	for _, f := range reservedFields {
		delete(doc, f)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return ID{}, nil, fmt.Errorf("failed to encode document %s: %w", id, err)
	}
	return id, data, nil
}
