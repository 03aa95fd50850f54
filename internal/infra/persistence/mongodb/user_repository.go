package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dom "example.com/cafe-admin/internal/domain/user"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	RoleCode     string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d *userDoc) toDomain() *dom.User {
	return &dom.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		RoleCode:     dom.RoleCode(d.RoleCode),
		CreatedAt:    d.CreatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{coll: s.collection(usersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *dom.User) (*dom.User, error) {
	u.CreatedAt = now()
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		RoleCode:     string(u.RoleCode),
		CreatedAt:    u.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, dom.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	u.ID = doc.ID.Hex()
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*dom.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, dom.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*dom.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*dom.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dom.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*dom.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]*dom.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return dom.ErrUserNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return dom.ErrUserNotFound
	}
	return nil
}
