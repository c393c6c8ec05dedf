package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/domain/expense"
	"frontdesk/internal/domain/shared/money"
)

type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository(db *mongo.Database) *ExpenseRepository {
	col := db.Collection("fd_expenses")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "incurred_at", Value: 1}}}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &ExpenseRepository{col: col}
}

func (r *ExpenseRepository) ByID(ctx context.Context, id expense.ID) (*expense.Expense, error) {
	var doc expenseDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, expense.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ExpenseRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*expense.Expense, error) {
	filter := bson.M{"incurred_at": bson.M{"$gte": from.UnixMilli(), "$lte": to.UnixMilli()}}
	opts := options.Find().SetSort(bson.D{{Key: "incurred_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*expense.Expense
	for cursor.Next(ctx) {
		var doc expenseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *ExpenseRepository) Save(ctx context.Context, entry *expense.Expense) error {
	doc := newExpenseDocument(entry)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	return err
}

type expenseDocument struct {
	ID          string `bson:"_id"`
	Category    string `bson:"category"`
	Description string `bson:"description"`
	Amount      int64  `bson:"amount"`
	Currency    string `bson:"currency"`
	IncurredAt  int64  `bson:"incurred_at"`
	RecordedBy  string `bson:"recorded_by"`
	CreatedAt   int64  `bson:"created_at"`
}

func newExpenseDocument(entry *expense.Expense) expenseDocument {
	return expenseDocument{
		ID:          string(entry.ID),
		Category:    string(entry.Category),
		Description: entry.Description,
		Amount:      entry.Amount.Amount,
		Currency:    entry.Amount.Currency,
		IncurredAt:  entry.IncurredAt.UnixMilli(),
		RecordedBy:  entry.RecordedBy,
		CreatedAt:   entry.CreatedAt.UnixMilli(),
	}
}

func (d expenseDocument) toAggregate() *expense.Expense {
	return &expense.Expense{
		ID:          expense.ID(d.ID),
		Category:    expense.Category(d.Category),
		Description: d.Description,
		Amount:      money.Money{Amount: d.Amount, Currency: d.Currency},
		IncurredAt:  timestampToTime(d.IncurredAt),
		RecordedBy:  d.RecordedBy,
		CreatedAt:   timestampToTime(d.CreatedAt),
	}
}
