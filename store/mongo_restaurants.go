package store

import (
	"context"
	"errors"
	"time"

	"food-catalog-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type foodItemDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url"`
	Price       float64            `bson:"price"`
}

type restaurantDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	ImageURL    string             `bson:"image_url"`
	Rating      float64            `bson:"rating"`
	Category    string             `bson:"category"`
	Location    string             `bson:"location"`
	Tags        []string           `bson:"tags"`
	FoodItems   []foodItemDoc      `bson:"food_items"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func newRestaurantDoc(r models.Restaurant, now time.Time) restaurantDoc {
	return restaurantDoc{
		ID:          primitive.NewObjectID(),
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
		Category:    r.Category,
		Location:    r.Location,
		Tags:        nonNil(r.Tags),
		FoodItems:   foodItemDocs(r.FoodItems),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// sub-documents get their own ObjectID the way embedded schemas do in the collection
func foodItemDocs(items []models.FoodItem) []foodItemDoc {
	docs := make([]foodItemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, foodItemDoc{
			ID:          primitive.NewObjectID(),
			Name:        it.Name,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			Price:       it.Price,
		})
	}
	return docs
}

func (d restaurantDoc) model() models.Restaurant {
	items := make([]models.FoodItem, 0, len(d.FoodItems))
	for _, it := range d.FoodItems {
		items = append(items, models.FoodItem{
			Name:        it.Name,
			Description: it.Description,
			ImageURL:    it.ImageURL,
			Price:       it.Price,
		})
	}
	return models.Restaurant{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Rating:      d.Rating,
		Category:    d.Category,
		Location:    d.Location,
		Tags:        nonNil(d.Tags),
		FoodItems:   items,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// MongoRestaurantStore keeps the catalog in the products collection
type MongoRestaurantStore struct {
	collection *mongo.Collection
}

func NewMongoRestaurantStore(db *mongo.Database) *MongoRestaurantStore {
	return &MongoRestaurantStore{collection: db.Collection("products")}
}

func (s *MongoRestaurantStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "rating", Value: -1}},
	})
	return err
}

func (s *MongoRestaurantStore) InsertMany(ctx context.Context, rs []models.Restaurant) ([]models.Restaurant, error) {
	now := time.Now()
	docs := make([]any, len(rs))
	ids := make([]primitive.ObjectID, len(rs))
	out := make([]models.Restaurant, len(rs))
	for i, r := range rs {
		d := newRestaurantDoc(r, now)
		docs[i] = d
		ids[i] = d.ID
		out[i] = d.model()
	}
	if _, err := s.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		// an ordered insert stops at the first failure; remove whatever made it in
		if _, cerr := s.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); cerr != nil {
			return nil, errors.Join(err, cerr)
		}
		return nil, err
	}
	return out, nil
}

func (s *MongoRestaurantStore) FindByID(ctx context.Context, id string) (*models.Restaurant, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc restaurantDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r := doc.model()
	return &r, nil
}

func (s *MongoRestaurantStore) Insert(ctx context.Context, r *models.Restaurant) (*models.Restaurant, error) {
	doc := newRestaurantDoc(*r, time.Now())
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	out := doc.model()
	return &out, nil
}

func (s *MongoRestaurantStore) Update(ctx context.Context, id string, patch models.RestaurantPatch) (*models.Restaurant, error) {
	if patch.IsEmpty() {
		return s.FindByID(ctx, id)
	}
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Apply onto a zero record so the field mapping stays in one place
	var scratch models.Restaurant
	patch.Apply(&scratch)
	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = scratch.Title
	}
	if patch.Description != nil {
		set["description"] = scratch.Description
	}
	if patch.ImageURL != nil {
		set["image_url"] = scratch.ImageURL
	}
	if patch.Rating != nil {
		set["rating"] = scratch.Rating
	}
	if patch.Category != nil {
		set["category"] = scratch.Category
	}
	if patch.Location != nil {
		set["location"] = scratch.Location
	}
	if patch.Tags != nil {
		set["tags"] = nonNil(scratch.Tags)
	}
	if patch.FoodItems != nil {
		set["food_items"] = foodItemDocs(scratch.FoodItems)
	}

	var doc restaurantDoc
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r := doc.model()
	return &r, nil
}

func (s *MongoRestaurantStore) Delete(ctx context.Context, id string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoRestaurantStore) FindPage(ctx context.Context, req PageRequest) ([]models.Restaurant, error) {
	if err := checkSortField(req.SortField); err != nil {
		return nil, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: req.SortField, Value: int(req.Direction)}, {Key: "_id", Value: 1}}).
		SetSkip(int64(req.Skip)).
		SetLimit(int64(req.Limit))
	return s.find(ctx, opts)
}

func (s *MongoRestaurantStore) FindAll(ctx context.Context) ([]models.Restaurant, error) {
	return s.find(ctx, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (s *MongoRestaurantStore) find(ctx context.Context, opts *options.FindOptions) ([]models.Restaurant, error) {
	cur, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []restaurantDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	rs := make([]models.Restaurant, 0, len(docs))
	for _, d := range docs {
		rs = append(rs, d.model())
	}
	return rs, nil
}

func (s *MongoRestaurantStore) Count(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.D{})
}
