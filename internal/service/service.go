package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"catalogadmin/backend/internal/cache"
	"catalogadmin/backend/internal/domain"
	"catalogadmin/backend/internal/pricing"
	"catalogadmin/backend/internal/purchase"
	"catalogadmin/backend/internal/restock"
	"catalogadmin/backend/internal/store"
	"catalogadmin/backend/internal/xid"
)

var ErrAdminRequired = errors.New("admin role required")

const categoryCacheTTL = 5 * time.Minute

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Service struct {
	repo    store.Repository
	cache   cache.CategoryCache
	restock *restock.Engine
	logger  *zap.SugaredLogger
}

func New(repo store.Repository, categoryCache cache.CategoryCache, logger *zap.SugaredLogger) *Service {
	if categoryCache == nil {
		categoryCache = cache.NoopCategoryCache{}
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Service{
		repo:    repo,
		cache:   categoryCache,
		restock: restock.NewEngine(0),
		logger:  logger,
	}
}

func requireAdmin(ctx context.Context) (domain.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != "admin" {
		return domain.Actor{}, ErrAdminRequired
	}
	return actor, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if cached, hit, err := s.cache.Get(ctx); err == nil && hit {
		return cached, nil
	} else if err != nil {
		s.logger.Warnw("category cache read failed", "error", err)
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, categories, categoryCacheTTL); err != nil {
		s.logger.Warnw("category cache write failed", "error", err)
	}
	return categories, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}
	return *category, nil
}

func (s *Service) CreateCategory(ctx context.Context, req domain.CategoryCreateRequest) (domain.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.Category{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Category{}, store.ErrInvalidInput
	}

	category := domain.Category{
		ID:          xid.New("cat"),
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}

	saved, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return domain.Category{}, err
	}

	s.invalidateCategories(ctx)
	return *saved, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, req domain.CategoryUpdateRequest) (domain.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.Category{}, err
	}

	existing, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Category{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.ImageURL != nil {
		updated.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	saved, err := s.repo.UpdateCategory(ctx, updated)
	if err != nil {
		return domain.Category{}, err
	}

	s.invalidateCategories(ctx)
	return *saved, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidateCategories(ctx)
	return nil
}

func (s *Service) invalidateCategories(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warnw("category cache invalidation failed", "error", err)
	}
}

func (s *Service) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	return s.repo.ListSubCategories(ctx)
}

func (s *Service) ListSubCategoriesByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListSubCategoriesByCategory(ctx, categoryID)
}

func (s *Service) GetSubCategory(ctx context.Context, id string) (domain.SubCategory, error) {
	sub, err := s.repo.GetSubCategoryByID(ctx, id)
	if err != nil {
		return domain.SubCategory{}, err
	}
	return *sub, nil
}

func (s *Service) CreateSubCategory(ctx context.Context, req domain.SubCategoryCreateRequest) (domain.SubCategory, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.SubCategory{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	if req.Name == "" || req.CategoryID == "" {
		return domain.SubCategory{}, store.ErrInvalidInput
	}

	if _, err := s.repo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return domain.SubCategory{}, err
	}

	sub := domain.SubCategory{
		ID:          xid.New("sub"),
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}

	saved, err := s.repo.CreateSubCategory(ctx, sub)
	if err != nil {
		return domain.SubCategory{}, err
	}
	return *saved, nil
}

func (s *Service) UpdateSubCategory(ctx context.Context, id string, req domain.SubCategoryUpdateRequest) (domain.SubCategory, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.SubCategory{}, err
	}

	existing, err := s.repo.GetSubCategoryByID(ctx, id)
	if err != nil {
		return domain.SubCategory{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.SubCategory{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	saved, err := s.repo.UpdateSubCategory(ctx, updated)
	if err != nil {
		return domain.SubCategory{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteSubCategory(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.repo.DeleteSubCategory(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListActiveProducts(ctx)
}

func (s *Service) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.ListProductsByCategory(ctx, categoryID)
}

func (s *Service) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []domain.Product{}, nil
	}
	return s.repo.SearchProducts(ctx, keyword)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return *product, nil
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.Product{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.ToUpper(strings.TrimSpace(req.SKU))
	req.CategoryID = strings.TrimSpace(req.CategoryID)
	req.ImageURL = strings.TrimSpace(req.ImageURL)

	if req.Name == "" || req.CategoryID == "" || req.ImageURL == "" {
		return domain.Product{}, store.ErrInvalidInput
	}
	if req.SellingPrice <= 0 || req.UnitPrice < 0 || req.InitialStock < 0 {
		return domain.Product{}, store.ErrInvalidInput
	}
	if req.Discount < 0 || req.Discount > 100 {
		return domain.Product{}, store.ErrInvalidInput
	}
	if err := validateVariants(req.Variants); err != nil {
		return domain.Product{}, err
	}

	if _, err := s.repo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		return domain.Product{}, err
	}
	if req.SubCategoryID != "" {
		sub, err := s.repo.GetSubCategoryByID(ctx, req.SubCategoryID)
		if err != nil {
			return domain.Product{}, err
		}
		if sub.CategoryID != req.CategoryID {
			return domain.Product{}, store.ErrInvalidInput
		}
	}

	stock := req.InitialStock
	if len(req.Variants) > 0 {
		stock = variantStock(req.Variants)
	}

	product := domain.Product{
		ID:            xid.New("prod"),
		Name:          req.Name,
		Description:   strings.TrimSpace(req.Description),
		SKU:           req.SKU,
		UnitPrice:     req.UnitPrice,
		SellingPrice:  req.SellingPrice,
		Discount:      req.Discount,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Stock:         stock,
		ReorderLevel:  req.ReorderLevel,
		UnitOfMeasure: strings.TrimSpace(req.UnitOfMeasure),
		ImageURL:      req.ImageURL,
		ImageURLs:     req.ImageURLs,
		Variants:      req.Variants,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}
	applyDerivedPricing(&product)

	saved, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Infow("product created", "productId", saved.ID, "name", saved.Name, "variants", len(saved.Variants))
	return *saved, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Description != nil {
		updated.Description = strings.TrimSpace(*req.Description)
	}
	if req.SKU != nil {
		updated.SKU = strings.ToUpper(strings.TrimSpace(*req.SKU))
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.UnitPrice = *req.UnitPrice
	}
	if req.SellingPrice != nil {
		if *req.SellingPrice <= 0 {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.SellingPrice = *req.SellingPrice
	}
	if req.Discount != nil {
		if *req.Discount < 0 || *req.Discount > 100 {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Discount = *req.Discount
	}
	if req.CategoryID != nil {
		categoryID := strings.TrimSpace(*req.CategoryID)
		if categoryID == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		if _, err := s.repo.GetCategoryByID(ctx, categoryID); err != nil {
			return domain.Product{}, err
		}
		updated.CategoryID = categoryID
	}
	if req.SubCategoryID != nil {
		subCategoryID := strings.TrimSpace(*req.SubCategoryID)
		if subCategoryID != "" {
			sub, err := s.repo.GetSubCategoryByID(ctx, subCategoryID)
			if err != nil {
				return domain.Product{}, err
			}
			if sub.CategoryID != updated.CategoryID {
				return domain.Product{}, store.ErrInvalidInput
			}
		}
		updated.SubCategoryID = subCategoryID
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Stock = *req.Stock
	}
	if req.ReorderLevel != nil {
		updated.ReorderLevel = *req.ReorderLevel
	}
	if req.UnitOfMeasure != nil {
		updated.UnitOfMeasure = strings.TrimSpace(*req.UnitOfMeasure)
	}
	if req.ImageURL != nil {
		imageURL := strings.TrimSpace(*req.ImageURL)
		if imageURL == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.ImageURL = imageURL
	}
	if req.ImageURLs != nil {
		updated.ImageURLs = req.ImageURLs
	}
	if req.Variants != nil {
		if err := validateVariants(req.Variants); err != nil {
			return domain.Product{}, err
		}
		updated.Variants = req.Variants
		updated.Stock = variantStock(req.Variants)
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}
	applyDerivedPricing(&updated)

	saved, err := s.repo.UpdateProduct(ctx, updated)
	if err != nil {
		return domain.Product{}, err
	}
	return *saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, id)
}

// applyDerivedPricing recomputes the stored margin and discount price from
// the base prices. Both come back zeroed when undefined so stale derived
// values never survive a price edit.
func applyDerivedPricing(product *domain.Product) {
	derived := pricing.Derive(product.UnitPrice, product.SellingPrice, product.Discount)

	product.Margin = 0
	if derived.MarginDefined {
		product.Margin = pricing.Round2(derived.MarginPercent)
	}
	product.DiscountPrice = 0
	if derived.DiscountDefined {
		product.DiscountPrice = pricing.Round2(derived.DiscountedPrice)
	}
}

func validateVariants(variants []domain.ProductVariant) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if strings.TrimSpace(v.Color) == "" || strings.TrimSpace(v.Size) == "" {
			return store.ErrInvalidInput
		}
		if v.Quantity <= 0 {
			return store.ErrInvalidInput
		}
		key := v.Color + "|" + v.Size
		if _, dup := seen[key]; dup {
			return store.ErrInvalidInput
		}
		seen[key] = struct{}{}
	}
	return nil
}

func variantStock(variants []domain.ProductVariant) int {
	total := 0
	for _, v := range variants {
		total += v.Quantity
	}
	return total
}

func (s *Service) ListOrders(ctx context.Context, status string, limit int) ([]domain.Order, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !domain.OrderStatus(status).Valid() {
		return nil, store.ErrInvalidInput
	}
	return s.repo.ListOrders(ctx, domain.OrderStatus(status), limit)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	return *order, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, req domain.OrderStatusUpdateRequest) (domain.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.Order{}, err
	}
	if !req.Status.Valid() {
		return domain.Order{}, store.ErrInvalidInput
	}

	order, err := s.repo.UpdateOrderStatus(ctx, id, req.Status)
	if err != nil {
		return domain.Order{}, err
	}
	s.logger.Infow("order status updated", "orderId", order.ID, "status", order.Status)
	return *order, nil
}

func (s *Service) CreateSupplier(ctx context.Context, req domain.SupplierCreateRequest) (domain.Supplier, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return domain.Supplier{}, err
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Supplier{}, store.ErrInvalidInput
	}

	supplier := domain.Supplier{
		ID:           xid.New("sup"),
		Name:         req.Name,
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		Address:      strings.TrimSpace(req.Address),
		TaxID:        strings.TrimSpace(req.TaxID),
		PaymentTerms: strings.TrimSpace(req.PaymentTerms),
		CreatedAt:    time.Now().UTC(),
	}

	saved, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		return domain.Supplier{}, err
	}
	return *saved, nil
}

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *Service) GetSupplier(ctx context.Context, id string) (domain.Supplier, error) {
	supplier, err := s.repo.GetSupplierByID(ctx, id)
	if err != nil {
		return domain.Supplier{}, err
	}
	return *supplier, nil
}

// CreatePurchaseOrder replays the request through a draft so that every
// stored total is recomputed server side. Client supplied line totals and
// grand totals are ignored.
func (s *Service) CreatePurchaseOrder(ctx context.Context, req domain.PurchaseOrderCreateRequest) (domain.PurchaseOrder, error) {
	actor, err := requireAdmin(ctx)
	if err != nil {
		return domain.PurchaseOrder{}, err
	}

	req.SupplierID = strings.TrimSpace(req.SupplierID)
	if req.SupplierID == "" {
		return domain.PurchaseOrder{}, purchase.ErrSupplierRequired
	}
	if len(req.Items) == 0 {
		return domain.PurchaseOrder{}, purchase.ErrItemsRequired
	}
	if req.Shipping < 0 || req.Discount < 0 {
		return domain.PurchaseOrder{}, store.ErrInvalidInput
	}
	if !req.Payment.Method.Valid() || !req.Payment.Status.Valid() {
		return domain.PurchaseOrder{}, store.ErrInvalidInput
	}
	if req.Payment.PaidAmount < 0 {
		return domain.PurchaseOrder{}, store.ErrInvalidInput
	}

	if _, err := s.repo.GetSupplierByID(ctx, req.SupplierID); err != nil {
		return domain.PurchaseOrder{}, err
	}

	draft := purchase.NewDraft()
	draft.SelectSupplier(req.SupplierID)
	for _, item := range req.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" || item.Quantity < 1 || item.UnitPrice < 0 {
			return domain.PurchaseOrder{}, store.ErrInvalidInput
		}
		if item.ItemID == "" {
			item.ItemID = xid.New("line")
		}
		if item.ProductID != "" {
			if _, err := s.repo.GetProductByID(ctx, item.ProductID); err != nil {
				return domain.PurchaseOrder{}, err
			}
		}
		draft.AddItem(item)
	}
	draft.SetShipping(req.Shipping)
	draft.SetDiscount(req.Discount)
	draft.SetPayment(purchase.PaymentUpdate{
		Method:        &req.Payment.Method,
		Status:        &req.Payment.Status,
		PaidAmount:    &req.Payment.PaidAmount,
		ChequeNo:      &req.Payment.ChequeNo,
		BankName:      &req.Payment.BankName,
		TransactionID: &req.Payment.TransactionID,
		DueDate:       &req.Payment.DueDate,
	})

	po := domain.PurchaseOrder{
		ID:         xid.New("po"),
		SupplierID: req.SupplierID,
		Items:      draft.Items(),
		Subtotal:   pricing.Round2(draft.Subtotal),
		Tax:        pricing.Round2(draft.Tax),
		Shipping:   req.Shipping,
		Discount:   req.Discount,
		Total:      pricing.Round2(draft.Total),
		Payment:    draft.Payment(),
		Notes:      strings.TrimSpace(req.Notes),
		CreatedAt:  time.Now().UTC(),
		CreatedBy:  actor.Username,
	}

	saved, err := s.repo.CreatePurchaseOrder(ctx, po)
	if err != nil {
		return domain.PurchaseOrder{}, err
	}

	s.logger.Infow("purchase order created",
		"purchaseOrderId", saved.ID,
		"supplierId", saved.SupplierID,
		"items", len(saved.Items),
		"total", saved.Total,
	)
	return *saved, nil
}

func (s *Service) GetPurchaseOrder(ctx context.Context, id string) (domain.PurchaseOrder, error) {
	po, err := s.repo.GetPurchaseOrderByID(ctx, id)
	if err != nil {
		return domain.PurchaseOrder{}, err
	}
	return *po, nil
}

func (s *Service) ListPurchaseOrders(ctx context.Context, limit int) ([]domain.PurchaseOrder, error) {
	return s.repo.ListPurchaseOrders(ctx, limit)
}

// SalesReport aggregates delivered orders in [from, to). Cancelled and
// in-flight orders are excluded so the revenue figure only counts
// completed sales.
func (s *Service) SalesReport(ctx context.Context, fromDate string, toDate string) (domain.SalesReport, error) {
	from, to, err := parseReportRange(fromDate, toDate)
	if err != nil {
		return domain.SalesReport{}, err
	}

	orders, err := s.repo.ListOrdersBetween(ctx, from, to)
	if err != nil {
		return domain.SalesReport{}, err
	}

	report := domain.SalesReport{
		From:        from.Format("2006-01-02"),
		To:          to.Add(-24 * time.Hour).Format("2006-01-02"),
		TopProducts: make([]domain.SalesReportProduct, 0, 10),
	}

	byProduct := make(map[string]*domain.SalesReportProduct)
	for _, order := range orders {
		if order.Status != domain.OrderDelivered {
			continue
		}
		report.OrderCount++
		report.TotalRevenue += order.TotalAmount
		for _, item := range order.Items {
			entry := byProduct[item.ProductID]
			if entry == nil {
				entry = &domain.SalesReportProduct{
					ProductID:   item.ProductID,
					ProductName: item.ProductName,
				}
				byProduct[item.ProductID] = entry
			}
			entry.Quantity += item.Quantity
			entry.Revenue += item.Total
		}
	}
	report.TotalRevenue = pricing.Round2(report.TotalRevenue)

	products := make([]domain.SalesReportProduct, 0, len(byProduct))
	for _, entry := range byProduct {
		entry.Revenue = pricing.Round2(entry.Revenue)
		products = append(products, *entry)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue == products[j].Revenue {
			return products[i].ProductName < products[j].ProductName
		}
		return products[i].Revenue > products[j].Revenue
	})
	if len(products) > 10 {
		products = products[:10]
	}
	report.TopProducts = products

	return report, nil
}

// RestockSuggestions ranks products at or below their reorder level, using
// delivered orders inside the engine's sales window as the demand signal.
func (s *Service) RestockSuggestions(ctx context.Context) ([]restock.Suggestion, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orders, err := s.repo.ListOrdersBetween(ctx, now.Add(-s.restock.SalesWindow()), now)
	if err != nil {
		return nil, err
	}

	return s.restock.Suggest(products, orders), nil
}

// parseReportRange turns inclusive yyyy-mm-dd bounds into a [from, to)
// window. Empty bounds default to the trailing 30 days.
func parseReportRange(fromDate string, toDate string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	from := today.AddDate(0, 0, -30)
	if strings.TrimSpace(fromDate) != "" {
		parsed, err := time.Parse("2006-01-02", fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, store.ErrInvalidInput
		}
		from = parsed.UTC()
	}

	to := today.Add(24 * time.Hour)
	if strings.TrimSpace(toDate) != "" {
		parsed, err := time.Parse("2006-01-02", toDate)
		if err != nil {
			return time.Time{}, time.Time{}, store.ErrInvalidInput
		}
		to = parsed.UTC().Add(24 * time.Hour)
	}

	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must precede to", store.ErrInvalidInput)
	}
	return from, to, nil
}
