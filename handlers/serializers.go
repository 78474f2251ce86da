package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shadighanaat/DRF-store/config"
	"github.com/shadighanaat/DRF-store/models"
)

const dateLayout = "2006-01-02"

// money renders an amount the way DRF's DecimalField does.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type productResponse struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Slug              string `json:"slug"`
	Price             string `json:"price"`
	Category          string `json:"category"`
	CategoryID        int64  `json:"category_id"`
	UnitPriceAfterTax string `json:"unit_price_after_tax"`
	Inventory         int    `json:"inventory"`
	Description       string `json:"description"`
	PriceRials        int64  `json:"price_rials"`
}

func newProductResponse(p models.Product, catalog config.CatalogConfig) productResponse {
	return productResponse{
		ID:                p.ID,
		Title:             p.Name,
		Slug:              p.Slug,
		Price:             money(p.UnitPrice),
		Category:          p.CategoryName,
		CategoryID:        p.CategoryID,
		UnitPriceAfterTax: money(p.PriceAfterTax(catalog.Tax())),
		Inventory:         p.Inventory,
		Description:       p.Description,
		PriceRials:        p.PriceIn(catalog.RialsPerDollar),
	}
}

type categoryResponse struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	NumTopProduct int    `json:"num_top_product"`
}

func newCategoryResponse(c models.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Title: c.Title, Description: c.Description, NumTopProduct: c.ProductCount}
}

type commentResponse struct {
	ID     int64                `json:"id"`
	Name   string               `json:"name"`
	Body   string               `json:"body"`
	Status models.CommentStatus `json:"status"`
}

func newCommentResponse(c models.Comment) commentResponse {
	return commentResponse{ID: c.ID, Name: c.Name, Body: c.Body, Status: c.Status}
}

type cartProductResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
}

type cartItemResponse struct {
	ID        int64               `json:"id"`
	Product   cartProductResponse `json:"product"`
	Quantity  int                 `json:"quantity"`
	ItemTotal string              `json:"item_total"`
}

func newCartItemResponse(item models.CartItem) cartItemResponse {
	resp := cartItemResponse{ID: item.ID, Quantity: item.Quantity, ItemTotal: money(item.Total())}
	resp.Product.ID = item.ProductID
	if item.Product != nil {
		resp.Product.Name = item.Product.Name
		resp.Product.UnitPrice = money(item.Product.UnitPrice)
	}
	return resp
}

type cartResponse struct {
	ID         uuid.UUID          `json:"id"`
	Items      []cartItemResponse `json:"items"`
	TotalPrice string             `json:"total_price"`
}

func newCartResponse(cart models.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, newCartItemResponse(item))
	}
	return cartResponse{ID: cart.ID, Items: items, TotalPrice: money(cart.TotalPrice())}
}

// addCartItemResponse echoes the merged line after an add.
type addCartItemResponse struct {
	ID       int64 `json:"id"`
	Product  int64 `json:"product"`
	Quantity int   `json:"quantity"`
}

type customerResponse struct {
	ID        int64   `json:"id"`
	User      int64   `json:"user"`
	Phone     string  `json:"phone"`
	BirthDate *string `json:"birth_date"`
}

func newCustomerResponse(c models.Customer) customerResponse {
	resp := customerResponse{ID: c.ID, User: c.UserID, Phone: c.Phone}
	if c.BirthDate != nil {
		d := c.BirthDate.Format(dateLayout)
		resp.BirthDate = &d
	}
	return resp
}

type orderCustomerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type orderItemProductResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type orderItemResponse struct {
	ID        int64                    `json:"id"`
	Product   orderItemProductResponse `json:"product"`
	Quantity  int                      `json:"quantity"`
	UnitPrice string                   `json:"unit_price"`
}

type orderResponse struct {
	ID              int64                  `json:"id"`
	Customer        *orderCustomerResponse `json:"customer,omitempty"`
	Status          models.OrderStatus     `json:"status"`
	DatetimeCreated time.Time              `json:"datetime_created"`
	Items           []orderItemResponse    `json:"items"`
	TotalPrice      string                 `json:"total_price"`
}

// newOrderResponse includes the customer block only for staff callers.
func newOrderResponse(o models.Order, staff bool) orderResponse {
	resp := orderResponse{
		ID:              o.ID,
		Status:          o.Status,
		DatetimeCreated: o.CreatedAt,
		Items:           make([]orderItemResponse, 0, len(o.Items)),
		TotalPrice:      money(o.TotalPrice()),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:        item.ID,
			Product:   orderItemProductResponse{ID: item.ProductID, Name: item.ProductName},
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
		})
	}
	if staff && o.Customer != nil {
		oc := &orderCustomerResponse{ID: o.Customer.ID}
		if u := o.Customer.User; u != nil {
			oc.FirstName, oc.LastName, oc.Email = u.FirstName, u.LastName, u.Email
		}
		resp.Customer = oc
	}
	return resp
}

type userResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
