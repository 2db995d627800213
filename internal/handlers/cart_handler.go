package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/waterwise-labs/greywater-api/internal/cart"
	apierrors "github.com/waterwise-labs/greywater-api/internal/errors"
	"github.com/waterwise-labs/greywater-api/internal/middleware"
	"github.com/waterwise-labs/greywater-api/internal/models"
)

// SessionHeader carries the cart session across requests. The server never
// sets cookies; the client owns the session lifetime.
const SessionHeader = "X-Session-ID"

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	store cart.Store
}

// NewCartHandler creates a new CartHandler instance.
func NewCartHandler(store cart.Store) *CartHandler {
	return &CartHandler{
		store: store,
	}
}

// AddItemRequest represents the body for adding an item to the cart.
type AddItemRequest struct {
	VariantID string  `json:"variant_id" binding:"required"`
	Title     string  `json:"title" binding:"required"`
	Image     *string `json:"image"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
}

// UpdateQuantityRequest represents the body for updating a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// CartResponse represents the response for cart endpoints.
type CartResponse struct {
	Status string       `json:"status"`
	Cart   *models.Cart `json:"cart"`
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(c *gin.Context) {
	sessionID := h.session(c)

	current, err := h.store.Get(c.Request.Context(), sessionID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to load cart", err)
		return
	}

	h.respond(c, current)
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	log := middleware.GetLogger(c)
	sessionID := h.session(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Adding cart item", map[string]interface{}{
			"variant_id": req.VariantID,
			"quantity":   req.Quantity,
		})
	}

	current, err := h.store.AddItem(c.Request.Context(), sessionID, models.CartItem{
		VariantID: req.VariantID,
		Title:     req.Title,
		Image:     req.Image,
		Price:     req.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		apierrors.InternalServerError(c, "Failed to add cart item", err)
		return
	}

	h.respond(c, current)
}

// UpdateQuantity handles PATCH /api/v1/cart/items/:variantId.
// Quantity zero removes the line.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	sessionID := h.session(c)
	variantID := c.Param("variantId")

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	current, err := h.store.UpdateQuantity(c.Request.Context(), sessionID, variantID, req.Quantity)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to update cart item", err)
		return
	}

	h.respond(c, current)
}

// RemoveItem handles DELETE /api/v1/cart/items/:variantId.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := h.session(c)
	variantID := c.Param("variantId")

	current, err := h.store.RemoveItem(c.Request.Context(), sessionID, variantID)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to remove cart item", err)
		return
	}

	h.respond(c, current)
}

// Clear handles DELETE /api/v1/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID := h.session(c)

	if err := h.store.Clear(c.Request.Context(), sessionID); err != nil {
		apierrors.InternalServerError(c, "Failed to clear cart", err)
		return
	}

	h.respond(c, models.NewCart(sessionID, nil))
}

// session reads the client's session ID, minting one when the header is
// absent so a first request still gets a working cart. The minted ID is
// echoed back in the response header for the client to keep.
func (h *CartHandler) session(c *gin.Context) string {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	c.Header(SessionHeader, sessionID)
	return sessionID
}

func (h *CartHandler) respond(c *gin.Context, current *models.Cart) {
	c.JSON(http.StatusOK, CartResponse{
		Status: "success",
		Cart:   current,
	})
}
