package domain

import "time"

type Category struct {
	ID          string    `json:"categoryId"`
	Name        string    `json:"categoryName"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Active      bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CategoryCreateRequest struct {
	Name        string `json:"categoryName"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type CategoryUpdateRequest struct {
	Name        *string `json:"categoryName,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	Active      *bool   `json:"isActive,omitempty"`
}

type SubCategory struct {
	ID          string    `json:"subCategoryId"`
	CategoryID  string    `json:"categoryId"`
	Name        string    `json:"subCategoryName"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SubCategoryCreateRequest struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"subCategoryName"`
	Description string `json:"description"`
}

type SubCategoryUpdateRequest struct {
	Name        *string `json:"subCategoryName,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"isActive,omitempty"`
}

// ProductVariant is one stock-keeping cell of the color x size matrix.
// Quantity is always positive: zero-quantity cells are never emitted.
type ProductVariant struct {
	Color    string `json:"color"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type Product struct {
	ID            string           `json:"productId"`
	Name          string           `json:"productName"`
	Description   string           `json:"productDescription,omitempty"`
	SKU           string           `json:"sku,omitempty"`
	UnitPrice     float64          `json:"unitPrice,omitempty"`
	SellingPrice  float64          `json:"sellingPrice"`
	Margin        float64          `json:"margin,omitempty"`
	Discount      float64          `json:"discount,omitempty"`
	DiscountPrice float64          `json:"discountPrice,omitempty"`
	CategoryID    string           `json:"categoryId"`
	SubCategoryID string           `json:"subCategoryId,omitempty"`
	Stock         int              `json:"stock"`
	ReorderLevel  int              `json:"reorderLevel,omitempty"`
	UnitOfMeasure string           `json:"unitOfMeasure,omitempty"`
	ImageURL      string           `json:"imageUrl,omitempty"`
	ImageURLs     []string         `json:"imageUrls,omitempty"`
	Variants      []ProductVariant `json:"variants,omitempty"`
	Active        bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
}

type ProductCreateRequest struct {
	Name          string           `json:"productName"`
	Description   string           `json:"productDescription"`
	SKU           string           `json:"sku"`
	UnitPrice     float64          `json:"unitPrice"`
	SellingPrice  float64          `json:"sellingPrice"`
	Discount      float64          `json:"discount"`
	CategoryID    string           `json:"categoryId"`
	SubCategoryID string           `json:"subCategoryId"`
	InitialStock  int              `json:"initialStock"`
	ReorderLevel  int              `json:"reorderLevel"`
	UnitOfMeasure string           `json:"unitOfMeasure"`
	ImageURL      string           `json:"imageUrl"`
	ImageURLs     []string         `json:"imageUrls"`
	Variants      []ProductVariant `json:"variants"`
}

type ProductUpdateRequest struct {
	Name          *string          `json:"productName,omitempty"`
	Description   *string          `json:"productDescription,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
	UnitPrice     *float64         `json:"unitPrice,omitempty"`
	SellingPrice  *float64         `json:"sellingPrice,omitempty"`
	Discount      *float64         `json:"discount,omitempty"`
	CategoryID    *string          `json:"categoryId,omitempty"`
	SubCategoryID *string          `json:"subCategoryId,omitempty"`
	Stock         *int             `json:"initialStock,omitempty"`
	ReorderLevel  *int             `json:"reorderLevel,omitempty"`
	UnitOfMeasure *string          `json:"unitOfMeasure,omitempty"`
	ImageURL      *string          `json:"imageUrl,omitempty"`
	ImageURLs     []string         `json:"imageUrls,omitempty"`
	Variants      []ProductVariant `json:"variants,omitempty"`
	Active        *bool            `json:"isActive,omitempty"`
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

type Order struct {
	ID           string      `json:"orderId"`
	CustomerName string      `json:"customerName"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	Status       OrderStatus `json:"orderStatus"`
	TotalAmount  float64     `json:"totalAmount"`
	OrderDate    time.Time   `json:"orderDate"`
	Items        []OrderItem `json:"items"`
}

type OrderStatusUpdateRequest struct {
	Status OrderStatus `json:"orderStatus"`
}

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	default:
		return false
	}
}

type Supplier struct {
	ID           string    `json:"supplierId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	TaxID        string    `json:"taxId,omitempty"`
	PaymentTerms string    `json:"paymentTerms,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SupplierCreateRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	TaxID        string `json:"taxId"`
	PaymentTerms string `json:"paymentTerms"`
}

// PaymentMethod is the closed set of purchase payment methods.
type PaymentMethod string

const (
	PayCash         PaymentMethod = "CASH"
	PayCheque       PaymentMethod = "CHEQUE"
	PayBankTransfer PaymentMethod = "BANK_TRANSFER"
	PayCreditCard   PaymentMethod = "CREDIT_CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCash, PayCheque, PayBankTransfer, PayCreditCard:
		return true
	default:
		return false
	}
}

// PaymentStatus is the closed set of purchase payment states.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPartial, PaymentPaid:
		return true
	default:
		return false
	}
}

type PurchasePayment struct {
	Method        PaymentMethod `json:"method"`
	Status        PaymentStatus `json:"status"`
	PaidAmount    float64       `json:"paidAmount"`
	ChequeNo      string        `json:"chequeNo,omitempty"`
	BankName      string        `json:"bankName,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	DueDate       string        `json:"dueDate,omitempty"`
}

type PurchaseLine struct {
	ItemID    string  `json:"itemId"`
	ProductID string  `json:"productId,omitempty"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type PurchaseOrder struct {
	ID         string          `json:"purchaseOrderId"`
	SupplierID string          `json:"supplierId"`
	Items      []PurchaseLine  `json:"items"`
	Subtotal   float64         `json:"subtotal"`
	Tax        float64         `json:"tax"`
	Shipping   float64         `json:"shipping"`
	Discount   float64         `json:"discount"`
	Total      float64         `json:"total"`
	Payment    PurchasePayment `json:"payment"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	CreatedBy  string          `json:"createdBy,omitempty"`
}

type PurchaseOrderCreateRequest struct {
	SupplierID string          `json:"supplierId"`
	Items      []PurchaseLine  `json:"items"`
	Shipping   float64         `json:"shipping"`
	Discount   float64         `json:"discount"`
	Payment    PurchasePayment `json:"payment"`
	Notes      string          `json:"notes"`
}

type UploadResult struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

type SalesReportProduct struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantitySold"`
	Revenue     float64 `json:"revenue"`
}

type SalesReport struct {
	From         string               `json:"from"`
	To           string               `json:"to"`
	OrderCount   int                  `json:"orderCount"`
	TotalRevenue float64              `json:"totalRevenue"`
	TopProducts  []SalesReportProduct `json:"topProducts"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expiresAt"`
}

type Actor struct {
	Username string
	Role     string
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type StaffCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StaffUser is the outward view of a staff account. It never carries the
// password hash.
type StaffUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
