package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domorder "example.com/cafe-admin/internal/domain/order"
)

type customerDoc struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

// orderItemDoc keeps the product id as a plain string. It records which
// product was priced, not a live reference.
type orderItemDoc struct {
	Product  string               `bson:"product"`
	Name     string               `bson:"name"`
	Quantity int64                `bson:"quantity"`
	Price    primitive.Decimal128 `bson:"price"`
}

type orderDoc struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Customer      customerDoc          `bson:"customer"`
	Items         []orderItemDoc       `bson:"items"`
	Total         primitive.Decimal128 `bson:"total"`
	Status        string               `bson:"status"`
	PaymentMethod string               `bson:"paymentMethod"`
	PaymentStatus string               `bson:"paymentStatus"`
	Notes         string               `bson:"notes"`
	CreatedAt     time.Time            `bson:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"`
}

func newOrderDoc(o *domorder.Order) (*orderDoc, error) {
	total, err := toDecimal128(o.Total)
	if err != nil {
		return nil, err
	}
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, item := range o.Items {
		price, err := toDecimal128(item.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, orderItemDoc{
			Product:  item.ProductID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    price,
		})
	}
	return &orderDoc{
		Customer: customerDoc{
			Name:  o.Customer.Name,
			Email: o.Customer.Email,
			Phone: o.Customer.Phone,
		},
		Items:         items,
		Total:         total,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Notes:         o.Notes,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func (d *orderDoc) toDomain() (*domorder.Order, error) {
	total, err := fromDecimal128(d.Total)
	if err != nil {
		return nil, err
	}
	items := make([]domorder.OrderItem, 0, len(d.Items))
	for _, item := range d.Items {
		price, err := fromDecimal128(item.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, domorder.OrderItem{
			ProductID: item.Product,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     price,
		})
	}
	return &domorder.Order{
		ID: d.ID.Hex(),
		Customer: domorder.Customer{
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
			Phone: d.Customer.Phone,
		},
		Items:         items,
		Total:         total,
		Status:        domorder.Status(d.Status),
		PaymentMethod: domorder.PaymentMethod(d.PaymentMethod),
		PaymentStatus: domorder.PaymentStatus(d.PaymentStatus),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(s *Store) *OrderRepository {
	return &OrderRepository{coll: s.collection(ordersCollection)}
}

// Create stores the order with its items embedded, so the write is a
// single atomic document insert.
func (r *OrderRepository) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	doc, err := newOrderDoc(o)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	o.ID = doc.ID.Hex()
	return o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter domorder.ListFilter) ([]*domorder.Order, error) {
	query := bson.M{}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	orders := make([]*domorder.Order, 0, len(docs))
	for i := range docs {
		o, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *OrderRepository) Update(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	oid, ok := objectID(o.ID)
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	return r.findOneAndSet(ctx, bson.M{"_id": oid}, bson.M{
		"notes":         o.Notes,
		"paymentMethod": string(o.PaymentMethod),
		"paymentStatus": string(o.PaymentStatus),
		"updatedAt":     now(),
	})
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, from, to domorder.Status) (*domorder.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	updated, err := r.findOneAndSet(ctx,
		bson.M{"_id": oid, "status": string(from)},
		bson.M{"status": string(to), "updatedAt": now()},
	)
	if !errors.Is(err, domorder.ErrOrderNotFound) {
		return updated, err
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, domorder.ErrOrderNotFound
	}
	return nil, domorder.ErrInvalidTransition
}

func (r *OrderRepository) findOneAndSet(ctx context.Context, filter, set bson.M) (*domorder.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDoc
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domorder.ErrOrderNotFound
		}
		return nil, err
	}
	return doc.toDomain()
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domorder.ErrOrderNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domorder.ErrOrderNotFound
	}
	return nil
}
