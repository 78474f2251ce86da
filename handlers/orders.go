package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shadighanaat/DRF-store/models"
)

type placeOrderRequest struct {
	CartID string `json:"cart_id" binding:"required"`
}

type updateOrderRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func (h *Handler) ListOrders(c *gin.Context) {
	actor := currentActor(c)
	orders, err := h.svc.Orders.List(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	results := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		results = append(results, newOrderResponse(order, actor.IsStaff))
	}
	c.JSON(http.StatusOK, results)
}

// PlaceOrder turns the cart into an order for the calling customer.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	id, err := uuid.Parse(req.CartID)
	if err != nil {
		badRequest(c, "Must be a valid UUID.")
		return
	}

	actor := currentActor(c)
	order, err := h.svc.Orders.PlaceForUser(c.Request.Context(), id, actor.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(*order, actor.IsStaff))
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	actor := currentActor(c)
	order, err := h.svc.Orders.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(*order, actor.IsStaff))
}

func (h *Handler) UpdateOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	order, err := h.svc.Orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.Status})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Orders.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
