package memory

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"catalogadmin/backend/internal/domain"
	"catalogadmin/backend/internal/store"
	"catalogadmin/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	categories      map[string]domain.Category
	subCategories   map[string]domain.SubCategory
	products        map[string]domain.Product
	orders          map[string]domain.Order
	suppliers       map[string]domain.Supplier
	purchaseOrders  map[string]domain.PurchaseOrder
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory accounts for dev/demo mode.
// Credentials come from SEED_ADMIN_PASSWORD and SEED_STAFF_PASSWORD; unset
// variables fall back to dev defaults with a logged warning. Production
// deployments use PostgreSQL and never hit this path.
func seedUsers(logger *zap.SugaredLogger) map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	staffPwd := envOr("SEED_STAFF_PASSWORD", "staff123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_STAFF_PASSWORD") == "" {
		logger.Warnw("using default dev credentials; set SEED_ADMIN_PASSWORD and SEED_STAFF_PASSWORD to override")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, "admin"},
		{"staff", staffPwd, "staff"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			logger.Fatalw("failed to hash seed password", "username", u.username, "err", err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewSeeded(logger *zap.SugaredLogger) *Store {
	now := time.Now().UTC()

	categories := []domain.Category{
		{ID: "cat-apparel", Name: "Apparel", Description: "Clothing and fashion", Active: true, CreatedAt: now},
		{ID: "cat-footwear", Name: "Footwear", Description: "Shoes and sandals", Active: true, CreatedAt: now},
		{ID: "cat-accessories", Name: "Accessories", Description: "Bags, belts, jewelry", Active: true, CreatedAt: now},
	}

	subCategories := []domain.SubCategory{
		{ID: "sub-tshirts", CategoryID: "cat-apparel", Name: "T-Shirts", Active: true, CreatedAt: now},
		{ID: "sub-jeans", CategoryID: "cat-apparel", Name: "Jeans", Active: true, CreatedAt: now},
		{ID: "sub-sneakers", CategoryID: "cat-footwear", Name: "Sneakers", Active: true, CreatedAt: now},
		{ID: "sub-belts", CategoryID: "cat-accessories", Name: "Belts", Active: true, CreatedAt: now},
	}

	products := []domain.Product{
		{
			ID: "prod-basic-tee", Name: "Basic Cotton Tee", SKU: "APP-TEE-001",
			UnitPrice: 6.50, SellingPrice: 14.99, Margin: 56.6,
			CategoryID: "cat-apparel", SubCategoryID: "sub-tshirts",
			Stock: 42, ReorderLevel: 10, UnitOfMeasure: "PIECE",
			Variants: []domain.ProductVariant{
				{Color: "BLACK", Size: "M", Quantity: 12},
				{Color: "BLACK", Size: "L", Quantity: 10},
				{Color: "WHITE", Size: "M", Quantity: 20},
			},
			Active: true, CreatedAt: now,
		},
		{
			ID: "prod-slim-jeans", Name: "Slim Fit Jeans", SKU: "APP-JNS-002",
			UnitPrice: 18, SellingPrice: 49.99, Margin: 64.0, Discount: 10, DiscountPrice: 44.99,
			CategoryID: "cat-apparel", SubCategoryID: "sub-jeans",
			Stock: 25, ReorderLevel: 8, UnitOfMeasure: "PIECE",
			Variants: []domain.ProductVariant{
				{Color: "NAVY", Size: "32", Quantity: 15},
				{Color: "NAVY", Size: "34", Quantity: 10},
			},
			Active: true, CreatedAt: now,
		},
		{
			ID: "prod-court-sneaker", Name: "Court Sneaker", SKU: "FTW-SNK-001",
			UnitPrice: 22, SellingPrice: 59.99, Margin: 63.3,
			CategoryID: "cat-footwear", SubCategoryID: "sub-sneakers",
			Stock: 30, ReorderLevel: 6, UnitOfMeasure: "PIECE",
			Active: true, CreatedAt: now,
		},
		{
			ID: "prod-leather-belt", Name: "Leather Belt", SKU: "ACC-BLT-001",
			UnitPrice: 4, SellingPrice: 12.50, Margin: 68.0,
			CategoryID: "cat-accessories", SubCategoryID: "sub-belts",
			Stock: 60, ReorderLevel: 15, UnitOfMeasure: "PIECE",
			Active: true, CreatedAt: now,
		},
	}

	orders := []domain.Order{
		{
			ID: "ord-1001", CustomerName: "Maya Chen", Phone: "555-0142",
			Status: domain.OrderPending, OrderDate: now.Add(-48 * time.Hour),
			Items: []domain.OrderItem{
				{ProductID: "prod-basic-tee", ProductName: "Basic Cotton Tee", UnitPrice: 14.99, Quantity: 2, Total: 29.98},
			},
			TotalAmount: 29.98,
		},
		{
			ID: "ord-1002", CustomerName: "Jordan Pratt", Phone: "555-0186",
			Status: domain.OrderDelivered, OrderDate: now.Add(-24 * time.Hour),
			Items: []domain.OrderItem{
				{ProductID: "prod-slim-jeans", ProductName: "Slim Fit Jeans", UnitPrice: 44.99, Quantity: 1, Total: 44.99},
				{ProductID: "prod-leather-belt", ProductName: "Leather Belt", UnitPrice: 12.50, Quantity: 1, Total: 12.50},
			},
			TotalAmount: 57.49,
		},
	}

	suppliers := []domain.Supplier{
		{ID: "sup-textile-co", Name: "Meridian Textile Co", Phone: "555-0200", PaymentTerms: "NET 30", CreatedAt: now},
		{ID: "sup-leatherworks", Name: "Harbor Leatherworks", Phone: "555-0201", PaymentTerms: "NET 15", CreatedAt: now},
	}

	s := &Store{
		categories:      make(map[string]domain.Category, len(categories)),
		subCategories:   make(map[string]domain.SubCategory, len(subCategories)),
		products:        make(map[string]domain.Product, len(products)),
		orders:          make(map[string]domain.Order, len(orders)),
		suppliers:       make(map[string]domain.Supplier, len(suppliers)),
		purchaseOrders:  make(map[string]domain.PurchaseOrder),
		usersByUsername: seedUsers(logger),
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	for _, sc := range subCategories {
		s.subCategories[sc.ID] = sc
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	for _, sup := range suppliers {
		s.suppliers[sup.ID] = sup
	}
	return s
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sortByName(out, func(c domain.Category) string { return c.Name })
	return out, nil
}

func (s *Store) GetCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if strings.EqualFold(existing.Name, category.Name) {
			return nil, store.ErrConflict
		}
	}
	if category.ID == "" {
		category.ID = xid.New("cat")
	}
	s.categories[category.ID] = category
	return &category, nil
}

func (s *Store) UpdateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[category.ID]; !ok {
		return nil, store.ErrNotFound
	}
	s.categories[category.ID] = category
	return &category, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return store.ErrNotFound
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return store.ErrConflict
		}
	}
	delete(s.categories, id)
	for subID, sub := range s.subCategories {
		if sub.CategoryID == id {
			delete(s.subCategories, subID)
		}
	}
	return nil
}

func (s *Store) ListSubCategories(_ context.Context) ([]domain.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SubCategory, 0, len(s.subCategories))
	for _, sc := range s.subCategories {
		out = append(out, sc)
	}
	sortByName(out, func(sc domain.SubCategory) string { return sc.Name })
	return out, nil
}

func (s *Store) ListSubCategoriesByCategory(_ context.Context, categoryID string) ([]domain.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.SubCategory, 0, 8)
	for _, sc := range s.subCategories {
		if sc.CategoryID == categoryID {
			out = append(out, sc)
		}
	}
	sortByName(out, func(sc domain.SubCategory) string { return sc.Name })
	return out, nil
}

func (s *Store) GetSubCategoryByID(_ context.Context, id string) (*domain.SubCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.subCategories[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sc, nil
}

func (s *Store) CreateSubCategory(_ context.Context, sub domain.SubCategory) (*domain.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[sub.CategoryID]; !ok {
		return nil, store.ErrNotFound
	}
	if sub.ID == "" {
		sub.ID = xid.New("sub")
	}
	s.subCategories[sub.ID] = sub
	return &sub, nil
}

func (s *Store) UpdateSubCategory(_ context.Context, sub domain.SubCategory) (*domain.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subCategories[sub.ID]; !ok {
		return nil, store.ErrNotFound
	}
	s.subCategories[sub.ID] = sub
	return &sub, nil
}

func (s *Store) DeleteSubCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subCategories[id]; !ok {
		return store.ErrNotFound
	}
	for _, p := range s.products {
		if p.SubCategoryID == id {
			return store.ErrConflict
		}
	}
	delete(s.subCategories, id)
	return nil
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(domain.Product) bool { return true }), nil
}

func (s *Store) ListActiveProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p domain.Product) bool { return p.Active }), nil
}

func (s *Store) ListProductsByCategory(_ context.Context, categoryID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectProducts(func(p domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (s *Store) SearchProducts(_ context.Context, keyword string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(keyword))
	return s.collectProducts(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
	}), nil
}

func (s *Store) collectProducts(keep func(domain.Product) bool) []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sortByName(out, func(p domain.Product) string { return p.Name })
	return out
}

func (s *Store) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[product.CategoryID]; !ok {
		return nil, store.ErrNotFound
	}
	if product.ID == "" {
		product.ID = xid.New("prod")
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[product.ID]; !ok {
		return nil, store.ErrNotFound
	}
	s.products[product.ID] = product
	return &product, nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) ListOrders(_ context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetOrderByID(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (s *Store) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return &o, nil
}

func (s *Store) ListOrdersBetween(_ context.Context, from time.Time, to time.Time) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if o.OrderDate.Before(from) || !o.OrderDate.Before(to) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.Before(out[j].OrderDate) })
	return out, nil
}

func (s *Store) CreateSupplier(_ context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if supplier.ID == "" {
		supplier.ID = xid.New("sup")
	}
	s.suppliers[supplier.ID] = supplier
	return &supplier, nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		out = append(out, sup)
	}
	sortByName(out, func(sup domain.Supplier) string { return sup.Name })
	return out, nil
}

func (s *Store) GetSupplierByID(_ context.Context, id string) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sup, ok := s.suppliers[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &sup, nil
}

func (s *Store) CreatePurchaseOrder(_ context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppliers[po.SupplierID]; !ok {
		return nil, store.ErrNotFound
	}
	if po.ID == "" {
		po.ID = xid.New("po")
	}
	s.purchaseOrders[po.ID] = po
	return &po, nil
}

func (s *Store) GetPurchaseOrderByID(_ context.Context, id string) (*domain.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	po, ok := s.purchaseOrders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &po, nil
}

func (s *Store) ListPurchaseOrders(_ context.Context, limit int) ([]domain.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PurchaseOrder, 0, len(s.purchaseOrders))
	for _, po := range s.purchaseOrders {
		out = append(out, po)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByUsername[user.Username]; exists {
		return store.ErrConflict
	}
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, u := range s.usersByUsername {
		out = append(out, u)
	}
	sortByName(out, func(u domain.UserAccount) string { return u.Username })
	return out, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.usersByUsername[username]
	if !ok {
		return store.ErrNotFound
	}
	u.Password = password
	s.usersByUsername[username] = u
	return nil
}

func sortByName[T any](items []T, key func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(key(items[i])) < strings.ToLower(key(items[j]))
	})
}
