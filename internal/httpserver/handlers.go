package httpserver

import (
	"errors"
	"net/http"

	"github.com/fullstackvinod/krishAlignUser/internal/domain"
	cartsvc "github.com/fullstackvinod/krishAlignUser/internal/service/cart"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type handlers struct {
	catalog catalogService
	orders  orderService
	carts   cartService
	logger  *zap.Logger
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.catalog.Categories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategory(cat))
	}
	c.JSON(http.StatusOK, newList(out))
}

func (h *handlers) listCombos(c *gin.Context) {
	combos, err := h.catalog.Combos(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]comboResponse, 0, len(combos))
	for _, combo := range combos {
		out = append(out, toCombo(combo))
	}
	c.JSON(http.StatusOK, newList(out))
}

func (h *handlers) getCombo(c *gin.Context) {
	combo, err := h.catalog.Combo(c.Request.Context(), c.Param("comboId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCombo(*combo))
}

func (h *handlers) listAlternatives(c *gin.Context) {
	alternatives, err := h.catalog.Alternatives(c.Request.Context(), c.Param("ingredientId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newList(toIngredients(alternatives)))
}

func (h *handlers) listOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	c.JSON(http.StatusOK, newList(out))
}

func (h *handlers) getOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*order))
}

func (h *handlers) openCart(c *gin.Context) {
	view := h.carts.Open(c.Request.Context())
	c.Header(cartSessionHeader, view.SessionID)
	c.JSON(http.StatusCreated, toCart(view))
}

func (h *handlers) getCart(c *gin.Context) {
	view, err := h.carts.Get(c.Request.Context(), sessionFromContext(c.Request.Context()))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(view))
}

func (h *handlers) updateCart(c *gin.Context) {
	var req cartsvc.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	view, err := h.carts.Update(c.Request.Context(), sessionFromContext(c.Request.Context()), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(view))
}

func (h *handlers) closeCart(c *gin.Context) {
	if err := h.carts.Close(c.Request.Context(), sessionFromContext(c.Request.Context())); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, cartsvc.ErrSessionNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "internal error")
	}
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorResponse{StatusCode: status, Message: message})
}
