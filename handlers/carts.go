package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type addCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity" binding:"required,min=1,max=32767"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=32767"`
}

func cartID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) CreateCart(c *gin.Context) {
	cart, err := h.svc.Carts.Create(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCartResponse(*cart))
}

func (h *Handler) GetCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	cart, err := h.svc.Carts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartResponse(*cart))
}

func (h *Handler) DeleteCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	if err := h.svc.Carts.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListCartItems(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	items, err := h.svc.Carts.ListItems(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	results := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		results = append(results, newCartItemResponse(item))
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetCartItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	item, err := h.svc.Carts.GetItem(c.Request.Context(), id, itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartItemResponse(*item))
}

// AddCartItem merges into the existing line for the product if there is one.
func (h *Handler) AddCartItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.svc.Carts.AddItem(c.Request.Context(), id, req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addCartItemResponse{ID: item.ID, Product: item.ProductID, Quantity: item.Quantity})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	item, err := h.svc.Carts.UpdateQuantity(c.Request.Context(), id, itemID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quantity": item.Quantity})
}

func (h *Handler) DeleteCartItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}
	if err := h.svc.Carts.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
