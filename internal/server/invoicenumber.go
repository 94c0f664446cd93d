package server

import (
	"net/http"

	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoicenumber"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shopcontext"
	shopdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/gin-gonic/gin"
)

type generateNumberRequest struct {
	PONumber       string `json:"po_number"`
	ExistingNumber string `json:"existing_number"`
}

// @Summary      Generate Invoice Number
// @Description  Mint an invoice number for the active shop. Passing an
// @Description  existing number back regenerates it verbatim.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request  body  generateNumberRequest  true  "Generate Request"
// @Success      200  {object}  invoicenumber.Components
// @Router       /invoice-numbers [post]
func (s *Server) GenerateInvoiceNumber(c *gin.Context) {
	var req generateNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	shopID := shopcontext.ShopIDFromContext(ctx)
	if shopID == 0 {
		AbortWithError(c, shopdomain.ErrInvalidShopID)
		return
	}

	info, err := s.numberInfo.BusinessInfo(ctx, shopID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	components := invoicenumber.Generate(info.BusinessName, req.PONumber, req.ExistingNumber)
	c.JSON(http.StatusOK, gin.H{"data": components})
}
