package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/storefront-core/internal/app/cart/usecases/add_to_cart"
	"github.com/light-bringer/storefront-core/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/storefront-core/internal/services"
)

// Handler serves the catalog and cart as JSON.
type Handler struct {
	opts   *services.ServiceOptions
	logger *slog.Logger
}

// NewHandler creates a new HTTP handler over the wired application.
func NewHandler(opts *services.ServiceOptions) *Handler {
	return &Handler{
		opts:   opts,
		logger: opts.Logger.With("component", "http"),
	}
}

// Router builds the gin engine with all routes and middleware.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(h.logger), Recovery(h.logger))

	r.GET("/healthz", h.health)

	api := r.Group("/api/v1")
	api.GET("/products", h.listProducts)
	api.GET("/products/:handle", h.getProduct)
	api.GET("/filters", h.listFilters)
	api.GET("/featured", h.featured)

	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addItem)
	api.PUT("/cart/items", h.updateItem)
	api.DELETE("/cart/items", h.removeItem)
	api.DELETE("/cart", h.clearCart)

	return r
}

func (h *Handler) health(c *gin.Context) {
	if !h.opts.Cart.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listProducts handles GET /api/v1/products. The listing is stateless: a
// client continues a chain by passing back end_cursor with the same filters.
func (h *Handler) listProducts(c *gin.Context) {
	sortKey, err := domain.ParseSortKey(c.Query("sort"))
	if err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	reverse, err := queryBool(c, "reverse")
	if err != nil {
		fail(c, err)
		return
	}
	first, err := queryInt(c, "first", h.opts.Config.PageSize)
	if err != nil {
		fail(c, err)
		return
	}

	filters := domain.Filters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Vendor:   c.Query("vendor"),
		Sort:     domain.Sort{Key: sortKey, Reverse: reverse},
	}.Normalize()

	page, err := h.opts.Gateway.ListProducts(c.Request.Context(), contracts.RequestFor(filters, first, c.Query("after")))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ListProductsResponse{
		Products:    toProducts(page.Products),
		HasNextPage: page.PageInfo.HasNextPage,
		EndCursor:   page.PageInfo.EndCursor,
	})
}

// getProduct handles GET /api/v1/products/:handle. Query parameters named
// after option axes pick values over the defaults.
func (h *Handler) getProduct(c *gin.Context) {
	view, err := h.opts.GetProduct.Execute(c.Request.Context(), &get_product.Request{Handle: c.Param("handle")})
	if err != nil {
		fail(c, err)
		return
	}

	for _, axis := range view.Options.Axes() {
		value := c.Query(axis.Name)
		if value == "" {
			continue
		}
		if err := view.Choose(axis.Name, value); err != nil {
			fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
			return
		}
	}

	c.JSON(http.StatusOK, toProductView(view))
}

func (h *Handler) listFilters(c *gin.Context) {
	result, err := h.opts.ListFilters.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, FiltersResponse{Categories: result.Categories, Vendors: result.Vendors})
}

func (h *Handler) featured(c *gin.Context) {
	products, err := h.opts.Featured.Execute(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProducts(products)})
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, toCart(h.opts.Cart.Cart()))
}

func (h *Handler) addItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	_, err := h.opts.AddToCart.Execute(c.Request.Context(), &add_to_cart.Request{
		Handle:     req.Handle,
		Selections: req.Options,
		Quantity:   req.Quantity,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCart(h.opts.Cart.Cart()))
}

func (h *Handler) updateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	if err := h.opts.Cart.SetQuantity(c.Request.Context(), req.ProductID, req.VariantID, req.Quantity); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(h.opts.Cart.Cart()))
}

// removeItem handles DELETE /api/v1/cart/items?product_id=..&variant_id=..
// Ids are backend gids that contain slashes, so they travel as query values.
func (h *Handler) removeItem(c *gin.Context) {
	productID, variantID := c.Query("product_id"), c.Query("variant_id")
	if productID == "" || variantID == "" {
		fail(c, fmt.Errorf("%w: product_id and variant_id are required", errBadRequest))
		return
	}

	if err := h.opts.Cart.RemoveFromCart(c.Request.Context(), productID, variantID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(h.opts.Cart.Cart()))
}

func (h *Handler) clearCart(c *gin.Context) {
	if err := h.opts.Cart.ClearCart(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(h.opts.Cart.Cart()))
}

func queryBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", errBadRequest, name)
	}
	return v, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
	}
	return v, nil
}
