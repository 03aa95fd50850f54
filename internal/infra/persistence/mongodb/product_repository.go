package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domproduct "example.com/cafe-admin/internal/domain/product"
)

type productDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Category    string               `bson:"category"`
	Price       primitive.Decimal128 `bson:"price"`
	Description string               `bson:"description"`
	Stock       int64                `bson:"stock"`
	Image       string               `bson:"image"`
	Featured    bool                 `bson:"featured"`
	IsAvailable bool                 `bson:"isAvailable"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func newProductDoc(p *domproduct.Product) (*productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return nil, err
	}
	return &productDoc{
		Name:        p.Name,
		Category:    string(p.Category),
		Price:       price,
		Description: p.Description,
		Stock:       p.Stock,
		Image:       p.Image,
		Featured:    p.Featured,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

func (d *productDoc) toDomain() (*domproduct.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return nil, err
	}
	return &domproduct.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Category:    domproduct.Category(d.Category),
		Price:       price,
		Description: d.Description,
		Stock:       d.Stock,
		Image:       d.Image,
		Featured:    d.Featured,
		IsAvailable: d.IsAvailable,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{coll: s.collection(productsCollection)}
}

func (r *ProductRepository) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	doc, err := newProductDoc(p)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	p.ID = doc.ID.Hex()
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	oid, ok := objectID(p.ID)
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	p.UpdatedAt = now()
	doc, err := newProductDoc(p)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":        doc.Name,
		"category":    doc.Category,
		"price":       doc.Price,
		"description": doc.Description,
		"stock":       doc.Stock,
		"image":       doc.Image,
		"featured":    doc.Featured,
		"isAvailable": doc.IsAvailable,
		"updatedAt":   doc.UpdatedAt,
	}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domproduct.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domproduct.ErrProductNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domproduct.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domproduct.ErrProductNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *ProductRepository) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	query := bson.M{}
	if filter.Category != nil {
		query["category"] = string(*filter.Category)
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]*domproduct.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}
