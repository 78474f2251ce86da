package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/services"
)

type productRequest struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Inventory   int              `json:"inventory" binding:"min=0"`
	Description string           `json:"description"`
	CategoryID  int64            `json:"category_id" binding:"required,min=1"`
}

func (r productRequest) input() services.ProductInput {
	return services.ProductInput{
		Name:        r.Title,
		Description: r.Description,
		UnitPrice:   *r.Price,
		Inventory:   r.Inventory,
		CategoryID:  r.CategoryID,
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return 0, false
	}
	return id, true
}

// productFilter reads the list query string.
func productFilter(c *gin.Context) (datastore.ProductFilter, error) {
	f := datastore.ProductFilter{Search: c.Query("search"), Ordering: c.Query("ordering")}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, errInvalidFilter("category_id")
		}
		f.CategoryID = &id
	}
	for key, dst := range map[string]**int{"inventory__gt": &f.InventoryGT, "inventory__lt": &f.InventoryLT} {
		if raw := c.Query(key); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return f, errInvalidFilter(key)
			}
			*dst = &n
		}
	}
	for key, dst := range map[string]**decimal.Decimal{"unit_price__gt": &f.PriceGT, "unit_price__lt": &f.PriceLT} {
		if raw := c.Query(key); raw != "" {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return f, errInvalidFilter(key)
			}
			*dst = &d
		}
	}
	return f, nil
}

type errInvalidFilter string

func (e errInvalidFilter) Error() string {
	return "Enter a valid number for " + string(e) + "."
}

func (h *Handler) ListProducts(c *gin.Context) {
	f, err := productFilter(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	p, err := parsePage(c, h.catalog.PageSize)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid page."})
		return
	}
	f.Limit, f.Offset = p.Size, p.offset()

	products, total, err := h.svc.Catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if p.Number > 1 && p.offset() >= total {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid page."})
		return
	}

	results := make([]productResponse, 0, len(products))
	for _, product := range products {
		results = append(results, newProductResponse(product, h.catalog))
	}
	c.JSON(http.StatusOK, newPaginated(c, p, total, results))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	product, err := h.svc.Catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product, h.catalog))
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	product, err := h.svc.Catalog.CreateProduct(c.Request.Context(), req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProductResponse(*product, h.catalog))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	product, err := h.svc.Catalog.UpdateProduct(c.Request.Context(), id, req.input())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProductResponse(*product, h.catalog))
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type categoryRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	results := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		results = append(results, newCategoryResponse(category))
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.svc.Catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	category, err := h.svc.Catalog.CreateCategory(c.Request.Context(), services.CategoryInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCategoryResponse(*category))
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	category, err := h.svc.Catalog.UpdateCategory(c.Request.Context(), id, services.CategoryInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
