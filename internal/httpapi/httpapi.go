package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalogadmin/backend/internal/domain"
	"catalogadmin/backend/internal/purchase"
	"catalogadmin/backend/internal/service"
	"catalogadmin/backend/internal/store"
	"catalogadmin/backend/internal/upload"
	"catalogadmin/backend/internal/variant"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200

	loginAttemptLimit  = 10
	loginAttemptWindow = time.Minute

	maxRequestBody = 8 << 20
)

// API wires the catalog service, auth manager and upload storage into a
// gin router.
type API struct {
	service        *service.Service
	auth           *AuthManager
	uploads        *upload.Storage
	logger         *zap.SugaredLogger
	allowedOrigins []string
	uploadDir      string
	loginLimiter   *attemptLimiter
}

func New(svc *service.Service, auth *AuthManager, uploads *upload.Storage, uploadDir string, allowedOrigins []string, logger *zap.SugaredLogger) *API {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &API{
		service:        svc,
		auth:           auth,
		uploads:        uploads,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		uploadDir:      uploadDir,
		loginLimiter:   newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
	}
}

// Router builds the full route tree. Reads require any authenticated user;
// catalog mutations, purchasing and reporting require the admin role.
func (a *API) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), a.requestLogger())
	router.MaxMultipartMemory = maxRequestBody

	corsConfig := cors.DefaultConfig()
	if len(a.allowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = a.allowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if a.uploadDir != "" {
		router.Static("/uploads", a.uploadDir)
	}

	router.POST("/api/v1/auth/login", a.handleLogin)

	authed := router.Group("/api/v1")
	authed.Use(a.requireAuth())
	{
		authed.GET("/categories", a.handleListCategories)
		authed.GET("/categories/:id", a.handleGetCategory)

		authed.GET("/subcategories", a.handleListSubCategories)
		authed.GET("/subcategories/category/:id", a.handleListSubCategoriesByCategory)
		authed.GET("/subcategories/:id", a.handleGetSubCategory)

		authed.GET("/products", a.handleListProducts)
		authed.GET("/products/active", a.handleListActiveProducts)
		authed.GET("/products/search", a.handleSearchProducts)
		authed.GET("/products/category/:id", a.handleListProductsByCategory)
		authed.GET("/products/:id", a.handleGetProduct)

		authed.GET("/orders", a.handleListOrders)
		authed.GET("/orders/:id", a.handleGetOrder)

		authed.GET("/suppliers", a.handleListSuppliers)
		authed.GET("/suppliers/:id", a.handleGetSupplier)

		authed.GET("/purchase-orders", a.handleListPurchaseOrders)
		authed.GET("/purchase-orders/:id", a.handleGetPurchaseOrder)

		authed.GET("/catalog/options", a.handleCatalogOptions)
	}

	admin := router.Group("/api/v1")
	admin.Use(a.requireAuth("admin"))
	{
		admin.POST("/categories", a.handleCreateCategory)
		admin.PUT("/categories/:id", a.handleUpdateCategory)
		admin.DELETE("/categories/:id", a.handleDeleteCategory)

		admin.POST("/subcategories", a.handleCreateSubCategory)
		admin.PUT("/subcategories/:id", a.handleUpdateSubCategory)
		admin.DELETE("/subcategories/:id", a.handleDeleteSubCategory)

		admin.POST("/products", a.handleCreateProduct)
		admin.PUT("/products/:id", a.handleUpdateProduct)
		admin.DELETE("/products/:id", a.handleDeleteProduct)

		admin.PATCH("/orders/:id/status", a.handleUpdateOrderStatus)

		admin.POST("/suppliers", a.handleCreateSupplier)

		admin.POST("/purchase-orders", a.handleCreatePurchaseOrder)

		admin.POST("/files/upload", a.handleUpload)
		admin.POST("/files/upload/batch", a.handleUploadBatch)
		admin.DELETE("/files/:name", a.handleDeleteFile)

		admin.GET("/reports/sales", a.handleSalesReport)
		admin.GET("/reports/restock", a.handleRestockReport)

		admin.POST("/staff", a.handleCreateStaff)
		admin.GET("/staff", a.handleListStaff)
	}

	return router
}

func (a *API) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// requireAuth validates the bearer token and, when roles are given, the
// caller's role. The resolved actor rides on the request context so the
// service layer can enforce admin-only operations itself.
func (a *API) requireAuth(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bearer token required"})
			return
		}
		actor, err := a.auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if len(roles) > 0 && !roleAllowed(actor.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Request = c.Request.WithContext(service.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

// respondError maps service and store sentinels onto HTTP statuses. Anything
// unrecognized is reported as a 422 so handler code never has to guess.
func (a *API) respondError(c *gin.Context, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, purchase.ErrSupplierRequired),
		errors.Is(err, purchase.ErrItemsRequired),
		errors.Is(err, purchase.ErrItemNotFound),
		errors.Is(err, upload.ErrEmptyFile),
		errors.Is(err, upload.ErrNotAnImage),
		errors.Is(err, upload.ErrFileTooLarge),
		errors.Is(err, upload.ErrInvalidDir):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAdminRequired):
		status = http.StatusForbidden
	}

	message := err.Error()
	if status >= http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}

func (a *API) handleLogin(c *gin.Context) {
	if !a.loginLimiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts, try again later"})
		return
	}
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	resp, err := a.auth.Login(req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) handleListCategories(c *gin.Context) {
	categories, err := a.service.ListCategories(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (a *API) handleGetCategory(c *gin.Context) {
	category, err := a.service.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *API) handleCreateCategory(c *gin.Context) {
	var req domain.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category, err := a.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (a *API) handleUpdateCategory(c *gin.Context) {
	var req domain.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	category, err := a.service.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (a *API) handleDeleteCategory(c *gin.Context) {
	if err := a.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) handleListSubCategories(c *gin.Context) {
	subs, err := a.service.ListSubCategories(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (a *API) handleListSubCategoriesByCategory(c *gin.Context) {
	subs, err := a.service.ListSubCategoriesByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (a *API) handleGetSubCategory(c *gin.Context) {
	sub, err := a.service.GetSubCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (a *API) handleCreateSubCategory(c *gin.Context) {
	var req domain.SubCategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sub, err := a.service.CreateSubCategory(c.Request.Context(), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (a *API) handleUpdateSubCategory(c *gin.Context) {
	var req domain.SubCategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	sub, err := a.service.UpdateSubCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (a *API) handleDeleteSubCategory(c *gin.Context) {
	if err := a.service.DeleteSubCategory(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) handleListProducts(c *gin.Context) {
	products, err := a.service.ListProducts(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (a *API) handleListActiveProducts(c *gin.Context) {
	products, err := a.service.ListActiveProducts(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (a *API) handleSearchProducts(c *gin.Context) {
	products, err := a.service.SearchProducts(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (a *API) handleListProductsByCategory(c *gin.Context) {
	products, err := a.service.ListProductsByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (a *API) handleGetProduct(c *gin.Context) {
	product, err := a.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (a *API) handleCreateProduct(c *gin.Context) {
	var req domain.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product, err := a.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (a *API) handleUpdateProduct(c *gin.Context) {
	var req domain.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product, err := a.service.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (a *API) handleDeleteProduct(c *gin.Context) {
	if err := a.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (a *API) handleListOrders(c *gin.Context) {
	limit := parsePositiveLimit(c.Query("limit"), defaultListLimit, maxListLimit)
	orders, err := a.service.ListOrders(c.Request.Context(), c.Query("status"), limit)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (a *API) handleGetOrder(c *gin.Context) {
	order, err := a.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (a *API) handleUpdateOrderStatus(c *gin.Context) {
	var req domain.OrderStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	order, err := a.service.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (a *API) handleListSuppliers(c *gin.Context) {
	suppliers, err := a.service.ListSuppliers(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func (a *API) handleGetSupplier(c *gin.Context) {
	supplier, err := a.service.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func (a *API) handleCreateSupplier(c *gin.Context) {
	var req domain.SupplierCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	supplier, err := a.service.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func (a *API) handleListPurchaseOrders(c *gin.Context) {
	limit := parsePositiveLimit(c.Query("limit"), defaultListLimit, maxListLimit)
	orders, err := a.service.ListPurchaseOrders(c.Request.Context(), limit)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (a *API) handleGetPurchaseOrder(c *gin.Context) {
	order, err := a.service.GetPurchaseOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (a *API) handleCreatePurchaseOrder(c *gin.Context) {
	var req domain.PurchaseOrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	order, err := a.service.CreatePurchaseOrder(c.Request.Context(), req)
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (a *API) handleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	result, err := a.uploads.Save(header, uploadSubDir(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (a *API) handleUploadBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one file is required"})
		return
	}
	results, err := a.uploads.SaveAll(headers, uploadSubDir(c))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, results)
}

func (a *API) handleDeleteFile(c *gin.Context) {
	if err := a.uploads.Delete(c.Param("name"), uploadSubDir(c)); err != nil {
		a.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func uploadSubDir(c *gin.Context) string {
	dir := strings.TrimSpace(c.Query("dir"))
	if dir == "" {
		return "products"
	}
	return dir
}

func (a *API) handleSalesReport(c *gin.Context) {
	report, err := a.service.SalesReport(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (a *API) handleRestockReport(c *gin.Context) {
	suggestions, err := a.service.RestockSuggestions(c.Request.Context())
	if err != nil {
		a.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (a *API) handleCatalogOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"colors": variant.DefaultColors,
		"sizes":  variant.DefaultSizes,
		"units":  variant.DefaultUnits,
	})
}

func (a *API) handleCreateStaff(c *gin.Context) {
	var req domain.StaffCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	staff, err := a.auth.CreateStaff(req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (a *API) handleListStaff(c *gin.Context) {
	c.JSON(http.StatusOK, a.auth.ListStaff())
}

func parsePositiveLimit(raw string, fallback int, max int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// attemptLimiter is a fixed-window counter keyed by client address, used to
// slow brute-force attempts against the login endpoint.
type attemptLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string][]time.Time
}

func newAttemptLimiter(max int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		max:     max,
		window:  window,
		entries: make(map[string][]time.Time),
	}
}

func (l *attemptLimiter) Allow(key string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.entries[key][:0]
	for _, at := range l.entries[key] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}
	if len(recent) >= l.max {
		l.entries[key] = recent
		return false
	}
	l.entries[key] = append(recent, now)
	return true
}
