package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shadighanaat/DRF-store/services"
)

type customerRequest struct {
	Phone     string  `json:"phone" binding:"max=32"`
	BirthDate *string `json:"birth_date"`
}

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.svc.Customers.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	results := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		results = append(results, newCustomerResponse(customer))
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) GetMe(c *gin.Context) {
	customer, err := h.svc.Customers.Me(c.Request.Context(), currentActor(c).UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCustomerResponse(*customer))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	in := services.CustomerInput{Phone: req.Phone}
	if req.BirthDate != nil && *req.BirthDate != "" {
		birth, err := time.Parse(dateLayout, *req.BirthDate)
		if err != nil {
			badRequest(c, "Date has wrong format. Use one of these formats instead: YYYY-MM-DD.")
			return
		}
		in.BirthDate = &birth
	}

	customer, err := h.svc.Customers.UpdateMe(c.Request.Context(), currentActor(c).UserID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCustomerResponse(*customer))
}
