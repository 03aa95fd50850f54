package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domgallery "example.com/cafe-admin/internal/domain/gallery"
)

type galleryDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Image        string             `bson:"image"`
	Featured     bool               `bson:"featured"`
	DisplayOrder int                `bson:"displayOrder"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *galleryDoc) toDomain() *domgallery.Image {
	return &domgallery.Image{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Image:        d.Image,
		Featured:     d.Featured,
		DisplayOrder: d.DisplayOrder,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type GalleryRepository struct {
	coll *mongo.Collection
}

func NewGalleryRepository(s *Store) *GalleryRepository {
	return &GalleryRepository{coll: s.collection(galleryCollection)}
}

func (r *GalleryRepository) Create(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	img.CreatedAt = now()
	img.UpdatedAt = img.CreatedAt
	doc := galleryDoc{
		ID:           primitive.NewObjectID(),
		Title:        img.Title,
		Description:  img.Description,
		Image:        img.Image,
		Featured:     img.Featured,
		DisplayOrder: img.DisplayOrder,
		CreatedAt:    img.CreatedAt,
		UpdatedAt:    img.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	img.ID = doc.ID.Hex()
	return img, nil
}

func (r *GalleryRepository) Update(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	oid, ok := objectID(img.ID)
	if !ok {
		return nil, domgallery.ErrImageNotFound
	}
	img.UpdatedAt = now()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"title":        img.Title,
		"description":  img.Description,
		"image":        img.Image,
		"featured":     img.Featured,
		"displayOrder": img.DisplayOrder,
		"updatedAt":    img.UpdatedAt,
	}})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domgallery.ErrImageNotFound
	}
	return img, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domgallery.ErrImageNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domgallery.ErrImageNotFound
	}
	return nil
}

func (r *GalleryRepository) GetByID(ctx context.Context, id string) (*domgallery.Image, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domgallery.ErrImageNotFound
	}
	var doc galleryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domgallery.ErrImageNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *GalleryRepository) List(ctx context.Context, filter domgallery.ListFilter) ([]*domgallery.Image, error) {
	query := bson.M{}
	if filter.OnlyFeatured {
		query["featured"] = true
	}
	sort := bson.D{{Key: "displayOrder", Value: 1}, {Key: "createdAt", Value: -1}}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	var docs []galleryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	images := make([]*domgallery.Image, 0, len(docs))
	for i := range docs {
		images = append(images, docs[i].toDomain())
	}
	return images, nil
}
