package server

import (
	"errors"
	"net/http"

	analyticsdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/analytics/domain"
	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	paymentdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/payment/domain"
	shopdomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/shop/domain"
	"github.com/gin-gonic/gin"
)

// apiError is the JSON error envelope returned to clients.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func invalidRequestError() *paymentdomain.ValidationError {
	return &paymentdomain.ValidationError{
		Field:   "body",
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

// AbortWithError maps domain errors onto HTTP responses. Validation
// failures are 400s with the violated constraint named; unknown errors
// stay opaque 500s.
func AbortWithError(c *gin.Context, err error) {
	var verr *paymentdomain.ValidationError
	if errors.As(err, &verr) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apiError{
			Code:    verr.Code,
			Message: verr.Message,
			Field:   verr.Field,
		}})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, paymentdomain.ErrInvoiceNotFound),
		errors.Is(err, shopdomain.ErrShopNotFound):
		status = http.StatusNotFound
		code = err.Error()
	case errors.Is(err, invoicedomain.ErrInvalidInvoiceID),
		errors.Is(err, paymentdomain.ErrInvalidInvoiceID),
		errors.Is(err, invoicedomain.ErrInvalidStatus),
		errors.Is(err, invoicedomain.ErrInvalidMilestone),
		errors.Is(err, invoicedomain.ErrInvalidCustomer),
		errors.Is(err, invoicedomain.ErrInvalidLineItem),
		errors.Is(err, invoicedomain.ErrInvalidTaxRate):
		status = http.StatusBadRequest
		code = err.Error()
	case errors.Is(err, invoicedomain.ErrInvalidShop),
		errors.Is(err, analyticsdomain.ErrInvalidShop),
		errors.Is(err, shopdomain.ErrInvalidShopID):
		status = http.StatusBadRequest
		code = err.Error()
	}

	message := code
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apiError{Code: code, Message: message}})
}
