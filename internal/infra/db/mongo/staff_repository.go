package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"frontdesk/internal/domain/user"
)

type StaffRepository struct {
	col *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) *StaffRepository {
	col := db.Collection("fd_staff")
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, _ = col.Indexes().CreateOne(context.Background(), idx)
	return &StaffRepository{col: col}
}

func (r *StaffRepository) ByID(ctx context.Context, id user.ID) (*user.User, error) {
	var doc staffDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *StaffRepository) ByEmail(ctx context.Context, email string) (*user.User, error) {
	var doc staffDocument
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *StaffRepository) List(ctx context.Context) ([]*user.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*user.User
	for cursor.Next(ctx) {
		var doc staffDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

func (r *StaffRepository) Save(ctx context.Context, staff *user.User) error {
	doc := newStaffDocument(staff)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": doc}, opts)
	if mongo.IsDuplicateKeyError(err) {
		return user.ErrEmailAlreadyUsed
	}
	return err
}

type staffDocument struct {
	ID           string   `bson:"_id"`
	Email        string   `bson:"email"`
	Name         string   `bson:"name"`
	PasswordHash string   `bson:"password_hash"`
	Roles        []string `bson:"roles"`
	Blocked      bool     `bson:"blocked"`
	CreatedAt    int64    `bson:"created_at"`
	UpdatedAt    int64    `bson:"updated_at"`
}

func newStaffDocument(staff *user.User) staffDocument {
	roles := make([]string, 0, len(staff.Roles))
	for _, role := range staff.Roles {
		roles = append(roles, string(role))
	}
	return staffDocument{
		ID:           string(staff.ID),
		Email:        staff.Email,
		Name:         staff.Name,
		PasswordHash: staff.PasswordHash,
		Roles:        roles,
		Blocked:      staff.Blocked,
		CreatedAt:    staff.CreatedAt.UnixMilli(),
		UpdatedAt:    staff.UpdatedAt.UnixMilli(),
	}
}

func (d staffDocument) toAggregate() *user.User {
	roles := make([]user.Role, 0, len(d.Roles))
	for _, role := range d.Roles {
		roles = append(roles, user.Role(role))
	}
	return &user.User{
		ID:           user.ID(d.ID),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Roles:        roles,
		Blocked:      d.Blocked,
		CreatedAt:    timestampToTime(d.CreatedAt),
		UpdatedAt:    timestampToTime(d.UpdatedAt),
	}
}
