package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	domcontact "example.com/cafe-admin/internal/domain/contact"
)

type socialMediaDoc struct {
	Facebook  string `bson:"facebook"`
	Instagram string `bson:"instagram"`
	Twitter   string `bson:"twitter"`
}

// contactDoc carries a constant singleton field under a unique index so
// only one contact document can exist.
type contactDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Singleton   bool               `bson:"singleton"`
	Phone       string             `bson:"phone"`
	Email       string             `bson:"email"`
	Address     string             `bson:"address"`
	Hours       string             `bson:"hours"`
	Website     string             `bson:"website"`
	SocialMedia socialMediaDoc     `bson:"socialMedia"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func newContactDoc(c *domcontact.Contact) contactDoc {
	return contactDoc{
		Singleton: true,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Hours:     c.Hours,
		Website:   c.Website,
		SocialMedia: socialMediaDoc{
			Facebook:  c.SocialMedia.Facebook,
			Instagram: c.SocialMedia.Instagram,
			Twitter:   c.SocialMedia.Twitter,
		},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d *contactDoc) toDomain() *domcontact.Contact {
	return &domcontact.Contact{
		ID:      d.ID.Hex(),
		Phone:   d.Phone,
		Email:   d.Email,
		Address: d.Address,
		Hours:   d.Hours,
		Website: d.Website,
		SocialMedia: domcontact.SocialMedia{
			Facebook:  d.SocialMedia.Facebook,
			Instagram: d.SocialMedia.Instagram,
			Twitter:   d.SocialMedia.Twitter,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(s *Store) *ContactRepository {
	return &ContactRepository{coll: s.collection(contactsCollection)}
}

func (r *ContactRepository) Get(ctx context.Context) (*domcontact.Contact, error) {
	var doc contactDoc
	if err := r.coll.FindOne(ctx, bson.M{"singleton": true}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domcontact.ErrContactNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ContactRepository) Create(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	doc := newContactDoc(c)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.Get(ctx)
		}
		return nil, err
	}
	c.ID = doc.ID.Hex()
	return c, nil
}

func (r *ContactRepository) Update(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	oid, ok := objectID(c.ID)
	if !ok {
		return nil, domcontact.ErrContactNotFound
	}
	c.UpdatedAt = now()
	doc := newContactDoc(c)

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"phone":       doc.Phone,
		"email":       doc.Email,
		"address":     doc.Address,
		"hours":       doc.Hours,
		"website":     doc.Website,
		"socialMedia": doc.SocialMedia,
		"updatedAt":   doc.UpdatedAt,
	}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domcontact.ErrContactNotFound
	}
	return c, nil
}
