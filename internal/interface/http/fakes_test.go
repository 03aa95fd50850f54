package http

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domcontact "example.com/cafe-admin/internal/domain/contact"
	domgallery "example.com/cafe-admin/internal/domain/gallery"
	domorder "example.com/cafe-admin/internal/domain/order"
	domproduct "example.com/cafe-admin/internal/domain/product"
	domuser "example.com/cafe-admin/internal/domain/user"
	"example.com/cafe-admin/internal/infra/security"
	authuc "example.com/cafe-admin/internal/usecase/auth"
	contactuc "example.com/cafe-admin/internal/usecase/contact"
	galleryuc "example.com/cafe-admin/internal/usecase/gallery"
	orderuc "example.com/cafe-admin/internal/usecase/order"
	productuc "example.com/cafe-admin/internal/usecase/product"
	useruc "example.com/cafe-admin/internal/usecase/user"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domproduct.Product
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domproduct.Product{}, nextID: 1}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = fmt.Sprintf("prod-%d", f.nextID)
	f.nextID++
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cloned := *p
	f.products[p.ID] = &cloned
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *domproduct.Product) (*domproduct.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	f.products[p.ID] = &cloned
	return p, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return domproduct.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domproduct.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, domproduct.ErrProductNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter domproduct.ListFilter) ([]*domproduct.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*domproduct.Product{}
	for _, p := range f.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		cloned := *p
		result = append(result, &cloned)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeGalleryRepo struct {
	images map[string]*domgallery.Image
	nextID int
}

func newFakeGalleryRepo() *fakeGalleryRepo {
	return &fakeGalleryRepo{images: map[string]*domgallery.Image{}, nextID: 1}
}

func (f *fakeGalleryRepo) Create(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	img.ID = fmt.Sprintf("img-%d", f.nextID)
	f.nextID++
	cloned := *img
	f.images[img.ID] = &cloned
	return img, nil
}

func (f *fakeGalleryRepo) Update(ctx context.Context, img *domgallery.Image) (*domgallery.Image, error) {
	if _, ok := f.images[img.ID]; !ok {
		return nil, domgallery.ErrImageNotFound
	}
	cloned := *img
	f.images[img.ID] = &cloned
	return img, nil
}

func (f *fakeGalleryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.images[id]; !ok {
		return domgallery.ErrImageNotFound
	}
	delete(f.images, id)
	return nil
}

func (f *fakeGalleryRepo) GetByID(ctx context.Context, id string) (*domgallery.Image, error) {
	img, ok := f.images[id]
	if !ok {
		return nil, domgallery.ErrImageNotFound
	}
	cloned := *img
	return &cloned, nil
}

func (f *fakeGalleryRepo) List(ctx context.Context, filter domgallery.ListFilter) ([]*domgallery.Image, error) {
	result := []*domgallery.Image{}
	for _, img := range f.images {
		if filter.OnlyFeatured && !img.Featured {
			continue
		}
		cloned := *img
		result = append(result, &cloned)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

type fakeContactRepo struct {
	contact *domcontact.Contact
	creates int
}

func (f *fakeContactRepo) Get(ctx context.Context) (*domcontact.Contact, error) {
	if f.contact == nil {
		return nil, domcontact.ErrContactNotFound
	}
	cloned := *f.contact
	return &cloned, nil
}

func (f *fakeContactRepo) Create(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	f.creates++
	c.ID = "contact-1"
	cloned := *c
	f.contact = &cloned
	return c, nil
}

func (f *fakeContactRepo) Update(ctx context.Context, c *domcontact.Contact) (*domcontact.Contact, error) {
	if f.contact == nil {
		return nil, domcontact.ErrContactNotFound
	}
	cloned := *c
	f.contact = &cloned
	return c, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domorder.Order
	nextID int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domorder.Order{}, nextID: 1}
}

func cloneOrder(o *domorder.Order) *domorder.Order {
	cloned := *o
	cloned.Items = append([]domorder.OrderItem(nil), o.Items...)
	return &cloned
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o.ID = fmt.Sprintf("order-%d", f.nextID)
	f.nextID++
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	f.orders[o.ID] = cloneOrder(o)
	return o, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, filter domorder.ListFilter) ([]*domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*domorder.Order{}
	for _, o := range f.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		result = append(result, cloneOrder(o))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, o *domorder.Order) (*domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[o.ID]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	stored.Notes = o.Notes
	stored.PaymentMethod = o.PaymentMethod
	stored.PaymentStatus = o.PaymentStatus
	return cloneOrder(stored), nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, from, to domorder.Status) (*domorder.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.orders[id]
	if !ok {
		return nil, domorder.ErrOrderNotFound
	}
	if stored.Status != from {
		return nil, domorder.ErrInvalidTransition
	}
	stored.Status = to
	return cloneOrder(stored), nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orders[id]; !ok {
		return domorder.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

type fakeUserRepo struct {
	users  map[string]*domuser.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domuser.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, domuser.ErrEmailAlreadyUsed
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	u.CreatedAt = time.Now().UTC()
	cloned := *u
	f.users[u.ID] = &cloned
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domuser.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domuser.ErrUserNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, domuser.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domuser.User, error) {
	result := []*domuser.User{}
	for _, u := range f.users {
		cloned := *u
		result = append(result, &cloned)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return domuser.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type testEnv struct {
	api        *API
	products   *fakeProductRepo
	gallery    *fakeGalleryRepo
	contact    *fakeContactRepo
	orders     *fakeOrderRepo
	users      *fakeUserRepo
	adminToken string
	staffToken string
}

const testPassword = "secret123"

// newTestEnv wires the API over in-memory repositories with one admin and
// one staff account, both using testPassword.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		products: newFakeProductRepo(),
		gallery:  newFakeGalleryRepo(),
		contact:  &fakeContactRepo{},
		orders:   newFakeOrderRepo(),
		users:    newFakeUserRepo(),
	}

	hasher := security.NewBcryptService(bcrypt.MinCost)
	tokens := security.NewJWTService("test-secret", "cafe-admin", time.Hour)
	userSvc := useruc.NewService(env.users, hasher)

	ctx := context.Background()
	admin, err := userSvc.CreateUser(ctx, useruc.CreateUserInput{
		ExecutorRole: domuser.RoleCodeAdmin,
		Name:         "Admin",
		Email:        "admin@cafe.test",
		Password:     testPassword,
		RoleCode:     domuser.RoleCodeAdmin,
	})
	require.NoError(t, err)
	staff, err := userSvc.CreateUser(ctx, useruc.CreateUserInput{
		ExecutorRole: domuser.RoleCodeAdmin,
		Name:         "Barista",
		Email:        "staff@cafe.test",
		Password:     testPassword,
		RoleCode:     domuser.RoleCodeStaff,
	})
	require.NoError(t, err)

	env.adminToken, err = tokens.GenerateToken(admin)
	require.NoError(t, err)
	env.staffToken, err = tokens.GenerateToken(staff)
	require.NoError(t, err)

	productSvc := productuc.NewService(env.products)
	env.api = NewAPI(Dependencies{
		AuthService:    authuc.NewService(env.users, hasher, tokens),
		UserService:    userSvc,
		ProductService: productSvc,
		GalleryService: galleryuc.NewService(env.gallery),
		ContactService: contactuc.NewService(env.contact),
		OrderService:   orderuc.NewService(env.orders, env.products),
		TokenService:   tokens,
		PingDB:         func(ctx context.Context) error { return nil },
	})
	return env
}

func (e *testEnv) seedProduct(t *testing.T, name string, category domproduct.Category, price string) *domproduct.Product {
	t.Helper()
	p, err := e.products.Create(context.Background(), &domproduct.Product{
		Name:        name,
		Category:    category,
		Price:       decimal.RequireFromString(price),
		Stock:       10,
		IsAvailable: true,
	})
	require.NoError(t, err)
	return p
}
