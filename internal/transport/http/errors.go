package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/light-bringer/storefront-core/internal/app/cart/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
)

// errBadRequest marks request validation failures.
var errBadRequest = errors.New("bad request")

type statusMapping struct {
	kind   error
	status int
	name   string
}

// statusMappings is checked in order; the first match wins.
var statusMappings = []statusMapping{
	{errBadRequest, http.StatusBadRequest, "bad_request"},
	{domain.ErrProductNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrTimeout, http.StatusGatewayTimeout, "timeout"},
	{domain.ErrNetwork, http.StatusBadGateway, "network"},
	{domain.ErrProtocol, http.StatusBadGateway, "protocol"},
	{domain.ErrNoMorePages, http.StatusNotFound, "no_more_pages"},
	{cartdomain.ErrVariantUnavailable, http.StatusConflict, "variant_unavailable"},
	{cartdomain.ErrSelectionIncomplete, http.StatusUnprocessableEntity, "selection_incomplete"},
	{cartdomain.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{cartdomain.ErrInvalidItem, http.StatusBadRequest, "invalid_item"},
	{cartdomain.ErrNotReady, http.StatusServiceUnavailable, "not_ready"},
}

// fail writes the error reply for err and records it on the context.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	for _, m := range statusMappings {
		if errors.Is(err, m.kind) {
			c.AbortWithStatusJSON(m.status, ErrorResponse{Error: err.Error(), Kind: m.name})
			return
		}
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: "internal"})
}
