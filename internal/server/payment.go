package server

import (
	"net/http"
	"strings"

	paymentdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

type applyPaymentRequest struct {
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	ReceiptID string  `json:"receipt_id"`
}

// @Summary      Apply Payment
// @Description  Apply a payment against the invoice's remaining balance
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "Invoice ID"
// @Param        request  body  applyPaymentRequest  true  "Payment"
// @Success      200  {object}  paymentdomain.ApplyPaymentResult
// @Router       /invoices/{id}/payments [post]
func (s *Server) ApplyPayment(c *gin.Context) {
	var req applyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.paymentSvc.ApplyPayment(c.Request.Context(), paymentdomain.ApplyPaymentRequest{
		InvoiceID: c.Param("id"),
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		ReceiptID: strings.TrimSpace(req.ReceiptID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
