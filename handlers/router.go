package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shadighanaat/DRF-store/apperrors"
	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/datastore"
	"github.com/shadighanaat/DRF-store/services"
)

// Handler serves the store API.
type Handler struct {
	svc     *services.Services
	store   datastore.Store
	catalog config.CatalogConfig
	logger  *zap.Logger
}

func New(svc *services.Services, store datastore.Store, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, store: store, catalog: cfg.Catalog, logger: logger}
}

// Router builds the gin engine with every route registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(h.logger))

	router.GET("/health", h.Health)

	auth := router.Group("/auth")
	{
		auth.POST("/users", h.Register)
		auth.POST("/jwt/create", h.Login)
	}

	authenticated := h.AuthMiddleware()
	staff := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return []gin.HandlerFunc{authenticated, StaffMiddleware(), handler}
	}

	store := router.Group("/store")
	{
		products := store.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.POST("", staff(h.CreateProduct)...)
			products.GET("/:id", h.GetProduct)
			products.PUT("/:id", staff(h.UpdateProduct)...)
			products.DELETE("/:id", staff(h.DeleteProduct)...)

			products.GET("/:id/comments", h.ListComments)
			products.POST("/:id/comments", h.CreateComment)
			products.GET("/:id/comments/:comment_id", h.GetComment)
			products.PUT("/:id/comments/:comment_id", h.UpdateComment)
			products.DELETE("/:id/comments/:comment_id", h.DeleteComment)
		}

		categories := store.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.POST("", staff(h.CreateCategory)...)
			categories.GET("/:id", h.GetCategory)
			categories.PUT("/:id", staff(h.UpdateCategory)...)
			categories.DELETE("/:id", staff(h.DeleteCategory)...)
		}

		carts := store.Group("/carts")
		{
			carts.POST("", h.CreateCart)
			carts.GET("/:id", h.GetCart)
			carts.DELETE("/:id", h.DeleteCart)

			carts.GET("/:id/items", h.ListCartItems)
			carts.POST("/:id/items", h.AddCartItem)
			carts.GET("/:id/items/:item_id", h.GetCartItem)
			carts.PATCH("/:id/items/:item_id", h.UpdateCartItem)
			carts.DELETE("/:id/items/:item_id", h.DeleteCartItem)
		}

		customers := store.Group("/customers", authenticated)
		{
			customers.GET("", StaffMiddleware(), h.ListCustomers)
			customers.GET("/me", h.GetMe)
			customers.PUT("/me", h.UpdateMe)
		}

		orders := store.Group("/orders", authenticated)
		{
			orders.GET("", h.ListOrders)
			orders.POST("", h.PlaceOrder)
			orders.GET("/:id", h.GetOrder)
			orders.PATCH("/:id", StaffMiddleware(), h.UpdateOrder)
			orders.DELETE("/:id", StaffMiddleware(), h.DeleteOrder)
		}
	}

	return router
}

// Health reports whether the data store answers.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": apperrors.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
