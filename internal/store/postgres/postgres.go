package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"catalogadmin/backend/internal/domain"
	"catalogadmin/backend/internal/store"
	"catalogadmin/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description,''), COALESCE(image_url,''), active, created_at
		FROM categories
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0, 32)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description,''), COALESCE(image_url,''), active, created_at
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if category.ID == "" {
		category.ID = xid.New("cat")
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	category.Active = true

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, description, image_url, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, category.ID, category.Name, category.Description, nullIfEmpty(category.ImageURL), category.Active, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	saved := category
	return &saved, nil
}

func (s *Store) UpdateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.ID == "" || category.Name == "" {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE categories
		SET name = $2, description = $3, image_url = $4, active = $5, updated_at = now()
		WHERE id = $1
	`, category.ID, category.Name, category.Description, nullIfEmpty(category.ImageURL), category.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	saved := category
	return &saved, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var productCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)::int FROM products WHERE category_id = $1
	`, id).Scan(&productCount)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return store.ErrConflict
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM sub_categories WHERE category_id = $1`, id)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

func (s *Store) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	return s.listSubCategories(ctx, "")
}

func (s *Store) ListSubCategoriesByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	return s.listSubCategories(ctx, categoryID)
}

func (s *Store) listSubCategories(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category_id, name, COALESCE(description,''), active, created_at
		FROM sub_categories
		WHERE ($1 = '' OR category_id = $1)
		ORDER BY name ASC
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]domain.SubCategory, 0, 32)
	for rows.Next() {
		var sub domain.SubCategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description, &sub.Active, &sub.CreatedAt); err != nil {
			return nil, err
		}
		sub.CreatedAt = sub.CreatedAt.UTC()
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func (s *Store) GetSubCategoryByID(ctx context.Context, id string) (*domain.SubCategory, error) {
	var sub domain.SubCategory
	err := s.db.QueryRowContext(ctx, `
		SELECT id, category_id, name, COALESCE(description,''), active, created_at
		FROM sub_categories
		WHERE id = $1
	`, id).Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.Description, &sub.Active, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	sub.CreatedAt = sub.CreatedAt.UTC()
	return &sub, nil
}

func (s *Store) CreateSubCategory(ctx context.Context, sub domain.SubCategory) (*domain.SubCategory, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	if sub.Name == "" || sub.CategoryID == "" {
		return nil, store.ErrInvalidInput
	}
	if sub.ID == "" {
		sub.ID = xid.New("sub")
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	sub.Active = true

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sub_categories (id, category_id, name, description, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, sub.ID, sub.CategoryID, sub.Name, sub.Description, sub.Active, sub.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	saved := sub
	return &saved, nil
}

func (s *Store) UpdateSubCategory(ctx context.Context, sub domain.SubCategory) (*domain.SubCategory, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	if sub.ID == "" || sub.Name == "" {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE sub_categories
		SET name = $2, description = $3, active = $4, updated_at = now()
		WHERE id = $1
	`, sub.ID, sub.Name, sub.Description, sub.Active)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	saved := sub
	return &saved, nil
}

func (s *Store) DeleteSubCategory(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var productCount int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)::int FROM products WHERE sub_category_id = $1
	`, id).Scan(&productCount)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return store.ErrConflict
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

const productColumns = `
	id, name, COALESCE(description,''), COALESCE(sku,''), unit_price, selling_price,
	margin, discount, discount_price, category_id, COALESCE(sub_category_id,''),
	stock, reorder_level, COALESCE(unit_of_measure,''), COALESCE(image_url,''),
	image_urls, variants, active, created_at
`

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name ASC
	`)
}

func (s *Store) ListActiveProducts(ctx context.Context) ([]domain.Product, error) {
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE active = true
		ORDER BY name ASC
	`)
}

func (s *Store) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE category_id = $1
		ORDER BY name ASC
	`, categoryID)
}

func (s *Store) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []domain.Product{}, nil
	}
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE name ILIKE '%' || $1 || '%' OR COALESCE(sku,'') ILIKE '%' || $1 || '%'
		ORDER BY name ASC
	`, keyword)
}

func (s *Store) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 64)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var imagesRaw []byte
	var variantsRaw []byte
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.SKU,
		&p.UnitPrice,
		&p.SellingPrice,
		&p.Margin,
		&p.Discount,
		&p.DiscountPrice,
		&p.CategoryID,
		&p.SubCategoryID,
		&p.Stock,
		&p.ReorderLevel,
		&p.UnitOfMeasure,
		&p.ImageURL,
		&imagesRaw,
		&variantsRaw,
		&p.Active,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if len(imagesRaw) > 0 {
		if err := json.Unmarshal(imagesRaw, &p.ImageURLs); err != nil {
			return nil, err
		}
	}
	if len(variantsRaw) > 0 {
		if err := json.Unmarshal(variantsRaw, &p.Variants); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *Store) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" || product.CategoryID == "" || product.SellingPrice <= 0 {
		return nil, store.ErrInvalidInput
	}
	if product.ID == "" {
		product.ID = xid.New("prod")
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	product.Active = true

	imagesJSON, err := json.Marshal(product.ImageURLs)
	if err != nil {
		return nil, err
	}
	variantsJSON, err := json.Marshal(product.Variants)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, sku, unit_price, selling_price, margin, discount,
			discount_price, category_id, sub_category_id, stock, reorder_level,
			unit_of_measure, image_url, image_urls, variants, active, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,now())
	`, product.ID, product.Name, product.Description, nullIfEmpty(product.SKU), product.UnitPrice,
		product.SellingPrice, product.Margin, product.Discount, product.DiscountPrice,
		product.CategoryID, nullIfEmpty(product.SubCategoryID), product.Stock, product.ReorderLevel,
		nullIfEmpty(product.UnitOfMeasure), nullIfEmpty(product.ImageURL), imagesJSON, variantsJSON,
		product.Active, product.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	saved := product
	return &saved, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.ID == "" || product.Name == "" || product.CategoryID == "" || product.SellingPrice <= 0 {
		return nil, store.ErrInvalidInput
	}

	imagesJSON, err := json.Marshal(product.ImageURLs)
	if err != nil {
		return nil, err
	}
	variantsJSON, err := json.Marshal(product.Variants)
	if err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, sku = $4, unit_price = $5, selling_price = $6,
			margin = $7, discount = $8, discount_price = $9, category_id = $10,
			sub_category_id = $11, stock = $12, reorder_level = $13, unit_of_measure = $14,
			image_url = $15, image_urls = $16, variants = $17, active = $18, updated_at = now()
		WHERE id = $1
	`, product.ID, product.Name, product.Description, nullIfEmpty(product.SKU), product.UnitPrice,
		product.SellingPrice, product.Margin, product.Discount, product.DiscountPrice,
		product.CategoryID, nullIfEmpty(product.SubCategoryID), product.Stock, product.ReorderLevel,
		nullIfEmpty(product.UnitOfMeasure), nullIfEmpty(product.ImageURL), imagesJSON, variantsJSON,
		product.Active)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	saved := product
	return &saved, nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, status domain.OrderStatus, limit int) ([]domain.Order, error) {
	if limit < 1 {
		limit = 200
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_name, COALESCE(phone,''), COALESCE(address,''), status, total_amount, order_date, items
		FROM orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY order_date DESC
		LIMIT $2
	`, string(status), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var itemsRaw []byte
	err := row.Scan(
		&order.ID,
		&order.CustomerName,
		&order.Phone,
		&order.Address,
		&order.Status,
		&order.TotalAmount,
		&order.OrderDate,
		&itemsRaw,
	)
	if err != nil {
		return nil, err
	}
	order.OrderDate = order.OrderDate.UTC()
	if len(itemsRaw) > 0 {
		if err := json.Unmarshal(itemsRaw, &order.Items); err != nil {
			return nil, err
		}
	}
	return &order, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, customer_name, COALESCE(phone,''), COALESCE(address,''), status, total_amount, order_date, items
		FROM orders
		WHERE id = $1
	`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now()
		WHERE id = $1
	`, id, string(status))
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}
	return s.GetOrderByID(ctx, id)
}

func (s *Store) ListOrdersBetween(ctx context.Context, from time.Time, to time.Time) ([]domain.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, customer_name, COALESCE(phone,''), COALESCE(address,''), status, total_amount, order_date, items
		FROM orders
		WHERE order_date >= $1 AND order_date < $2
		ORDER BY order_date ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 128)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return nil, store.ErrInvalidInput
	}
	if supplier.ID == "" {
		supplier.ID = xid.New("sup")
	}
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, phone, email, address, tax_id, payment_terms, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, supplier.ID, supplier.Name, nullIfEmpty(supplier.Phone), nullIfEmpty(supplier.Email),
		nullIfEmpty(supplier.Address), nullIfEmpty(supplier.TaxID), nullIfEmpty(supplier.PaymentTerms),
		supplier.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrConflict
		}
		return nil, err
	}
	saved := supplier
	return &saved, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(phone,''), COALESCE(email,''), COALESCE(address,''),
			COALESCE(tax_id,''), COALESCE(payment_terms,''), created_at
		FROM suppliers
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0, 64)
	for rows.Next() {
		var item domain.Supplier
		if err := rows.Scan(&item.ID, &item.Name, &item.Phone, &item.Email, &item.Address, &item.TaxID, &item.PaymentTerms, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.CreatedAt = item.CreatedAt.UTC()
		suppliers = append(suppliers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (s *Store) GetSupplierByID(ctx context.Context, id string) (*domain.Supplier, error) {
	var item domain.Supplier
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(phone,''), COALESCE(email,''), COALESCE(address,''),
			COALESCE(tax_id,''), COALESCE(payment_terms,''), created_at
		FROM suppliers
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Phone, &item.Email, &item.Address, &item.TaxID, &item.PaymentTerms, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	return &item, nil
}

func (s *Store) CreatePurchaseOrder(ctx context.Context, po domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	if po.SupplierID == "" || len(po.Items) == 0 {
		return nil, store.ErrInvalidInput
	}
	if po.ID == "" {
		po.ID = xid.New("po")
	}
	if po.CreatedAt.IsZero() {
		po.CreatedAt = time.Now().UTC()
	}

	itemsJSON, err := json.Marshal(po.Items)
	if err != nil {
		return nil, err
	}
	paymentJSON, err := json.Marshal(po.Payment)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO purchase_orders (
			id, supplier_id, items, subtotal, tax, shipping, discount, total,
			payment, notes, created_by, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, po.ID, po.SupplierID, itemsJSON, po.Subtotal, po.Tax, po.Shipping, po.Discount, po.Total,
		paymentJSON, po.Notes, nullIfEmpty(po.CreatedBy), po.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	saved := po
	return &saved, nil
}

func (s *Store) GetPurchaseOrderByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, items, subtotal, tax, shipping, discount, total,
			payment, COALESCE(notes,''), COALESCE(created_by,''), created_at
		FROM purchase_orders
		WHERE id = $1
	`, id)
	po, err := scanPurchaseOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return po, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context, limit int) ([]domain.PurchaseOrder, error) {
	if limit < 1 {
		limit = 200
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, supplier_id, items, subtotal, tax, shipping, discount, total,
			payment, COALESCE(notes,''), COALESCE(created_by,''), created_at
		FROM purchase_orders
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.PurchaseOrder, 0, limit)
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanPurchaseOrder(row rowScanner) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	var itemsRaw []byte
	var paymentRaw []byte
	err := row.Scan(
		&po.ID,
		&po.SupplierID,
		&itemsRaw,
		&po.Subtotal,
		&po.Tax,
		&po.Shipping,
		&po.Discount,
		&po.Total,
		&paymentRaw,
		&po.Notes,
		&po.CreatedBy,
		&po.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	po.CreatedAt = po.CreatedAt.UTC()
	if len(itemsRaw) > 0 {
		if err := json.Unmarshal(itemsRaw, &po.Items); err != nil {
			return nil, err
		}
	}
	if len(paymentRaw) > 0 {
		if err := json.Unmarshal(paymentRaw, &po.Payment); err != nil {
			return nil, err
		}
	}
	return &po, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.Username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidInput
	}
	if user.Role == "" {
		user.Role = "staff"
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (username, password, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM app_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.Username, &user.Password, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}
