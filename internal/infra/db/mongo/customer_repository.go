package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/domain/customer"
)

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	col := db.Collection("fd_customers")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "document_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &CustomerRepository{col: col}
}

func (r *CustomerRepository) ByID(ctx context.Context, id customer.ID) (*customer.Customer, error) {
	var doc customerDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CustomerRepository) ByDocument(ctx context.Context, documentID string) (*customer.Customer, error) {
	var doc customerDocument
	if err := r.col.FindOne(ctx, bson.M{"document_id": documentID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, customer.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*customer.Customer
	for cursor.Next(ctx) {
		var doc customerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *CustomerRepository) Save(ctx context.Context, guest *customer.Customer) error {
	doc := newCustomerDocument(guest)
	filter := bson.M{"_id": doc.ID, "version": guest.Version}
	doc.Version = guest.Version + 1
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return customer.ErrDocumentTaken
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	guest.Version = doc.Version
	return nil
}

type customerDocument struct {
	ID         string `bson:"_id"`
	FullName   string `bson:"full_name"`
	DocumentID string `bson:"document_id"`
	Phone      string `bson:"phone"`
	Notes      string `bson:"notes"`
	CreatedAt  int64  `bson:"created_at"`
	UpdatedAt  int64  `bson:"updated_at"`
	Version    int64  `bson:"version"`
}

func newCustomerDocument(guest *customer.Customer) customerDocument {
	return customerDocument{
		ID:         string(guest.ID),
		FullName:   guest.FullName,
		DocumentID: guest.DocumentID,
		Phone:      guest.Phone,
		Notes:      guest.Notes,
		CreatedAt:  guest.CreatedAt.UnixMilli(),
		UpdatedAt:  guest.UpdatedAt.UnixMilli(),
		Version:    guest.Version,
	}
}

func (d customerDocument) toAggregate() *customer.Customer {
	return &customer.Customer{
		ID:         customer.ID(d.ID),
		FullName:   d.FullName,
		DocumentID: d.DocumentID,
		Phone:      d.Phone,
		Notes:      d.Notes,
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
		Version:    d.Version,
	}
}
