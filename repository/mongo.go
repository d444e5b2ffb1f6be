package repository

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quickbite/models"
)

const mongoTimeout = 5 * time.Second

// Dial connects to MongoDB and pings it before returning the client.
func Dial(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "ping mongodb")
	}
	return client, nil
}

// MongoMenu reads the menu collection.
type MongoMenu struct {
	collection *mongo.Collection
}

func NewMongoMenu(client *mongo.Client) *MongoMenu {
	return &MongoMenu{collection: client.Database("quickbite").Collection("menu")}
}

// Seed inserts the demo menu if the collection is empty.
func (m *MongoMenu) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return errors.Wrap(err, "count menu items")
	}
	if count > 0 {
		return nil
	}
	docs := make([]interface{}, len(seedMenu))
	for i, item := range seedMenu {
		docs[i] = item
	}
	_, err = m.collection.InsertMany(ctx, docs)
	return errors.Wrap(err, "seed menu")
}

func (m *MongoMenu) List(ctx context.Context) ([]models.MenuItem, error) {
	return m.find(ctx, bson.M{})
}

func (m *MongoMenu) ListByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	filter := bson.M{"category": bson.M{"$regex": "^" + category + "$", "$options": "i"}}
	return m.find(ctx, filter)
}

func (m *MongoMenu) find(ctx context.Context, filter bson.M) ([]models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find menu items")
	}
	defer cursor.Close(ctx)

	var items []models.MenuItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, errors.Wrap(err, "decode menu items")
	}
	return items, nil
}

func (m *MongoMenu) Find(ctx context.Context, id int) (models.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	var item models.MenuItem
	err := m.collection.FindOne(ctx, bson.M{"id": id}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return models.MenuItem{}, ErrNotFound
	}
	if err != nil {
		return models.MenuItem{}, errors.Wrap(err, "find menu item")
	}
	return item, nil
}

func (m *MongoMenu) Categories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	raw, err := m.collection.Distinct(ctx, "category", bson.M{"category": bson.M{"$ne": ""}})
	if err != nil {
		return nil, errors.Wrap(err, "distinct categories")
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

// MongoOrders stores orders, assigning sequential ids through a counters
// collection so order ids stay small ints like the web storefront expects.
type MongoOrders struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMongoOrders(client *mongo.Client) *MongoOrders {
	db := client.Database("quickbite")
	return &MongoOrders{
		collection: db.Collection("orders"),
		counters:   db.Collection("counters"),
	}
}

func (m *MongoOrders) nextID(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}
	err := m.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "orders"},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, errors.Wrap(err, "next order id")
	}
	return doc.Seq, nil
}

func (m *MongoOrders) Create(ctx context.Context, order models.Order) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	id, err := m.nextID(ctx)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = id
	if _, err := m.collection.InsertOne(ctx, order); err != nil {
		return models.Order{}, errors.Wrap(err, "insert order")
	}
	return order, nil
}

func (m *MongoOrders) List(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return orders, nil
}

func (m *MongoOrders) Find(ctx context.Context, id int) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	var order models.Order
	err := m.collection.FindOne(ctx, bson.M{"id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, errors.Wrap(err, "find order")
	}
	return order, nil
}

func (m *MongoOrders) UpdateStatus(ctx context.Context, id int, status string) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	res, err := m.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoUsers looks up accounts in the users collection.
type MongoUsers struct {
	collection *mongo.Collection
}

func NewMongoUsers(client *mongo.Client) *MongoUsers {
	return &MongoUsers{collection: client.Database("quickbite").Collection("users")}
}

// Seed inserts the demo users if the collection is empty.
func (m *MongoUsers) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return errors.Wrap(err, "count users")
	}
	if count > 0 {
		return nil
	}
	mem, err := NewMemoryUsers()
	if err != nil {
		return err
	}
	docs := make([]interface{}, 0, len(mem.users))
	for _, u := range mem.users {
		docs = append(docs, u)
	}
	_, err = m.collection.InsertMany(ctx, docs)
	return errors.Wrap(err, "seed users")
}

func (m *MongoUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()
	var user models.User
	err := m.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, errors.Wrap(err, "find user")
	}
	return user, nil
}
