package mongoevents

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/m04kA/SMC-EventPlanner/internal/domain"
)

// Persister хранит события документами коллекции
type Persister struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect подключается к MongoDB, проверяет соединение и создает индекс по дате
func Connect(ctx context.Context, uri, database, collection string) (*Persister, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "fecha", Value: 1}, {Key: "sala", Value: 1}},
		Options: options.Index().SetUnique(false),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: create index: %v", ErrConnect, err)
	}

	return &Persister{client: client, collection: coll}, nil
}

// Save заменяет содержимое коллекции текущим списком событий
func (p *Persister) Save(ctx context.Context, events []*domain.Event) error {
	if _, err := p.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("%w: Save - delete: %v", ErrQuery, err)
	}

	if len(events) == 0 {
		return nil
	}

	if _, err := p.collection.InsertMany(ctx, toDocuments(events)); err != nil {
		return fmt.Errorf("%w: Save - insert: %v", ErrQuery, err)
	}
	return nil
}

// Load читает события, отсортированные по дате
func (p *Persister) Load(ctx context.Context) ([]*domain.Event, error) {
	cur, err := p.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: Load - find: %v", ErrQuery, err)
	}

	docs := []eventDocument{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: Load - decode: %v", ErrQuery, err)
	}

	return fromDocuments(docs)
}

// Close закрывает соединение
func (p *Persister) Close(ctx context.Context) error {
	return p.client.Disconnect(ctx)
}
