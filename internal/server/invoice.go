package server

import (
	"net/http"
	"strings"

	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
	"github.com/KnownApo/wrenchtrack-vite-final-sub001/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// @Summary      List Invoices
// @Description  List the shop's invoices
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        status      query  string  false  "Status"
// @Param        customer    query  string  false  "Customer name filter"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  invoicedomain.ListInvoiceResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status   string `form:"status"`
		Customer string `form:"customer"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), invoicedomain.ListInvoiceRequest{
		Pagination: query.Pagination,
		Status:     invoicedomain.InvoiceStatus(strings.TrimSpace(query.Status)),
		Customer:   strings.TrimSpace(query.Customer),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Invoice
// @Description  Create a new invoice with a generated invoice number
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoicedomain.CreateInvoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoicedomain.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoice(c *gin.Context) {
	invoice, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// @Summary      Update Invoice Status
// @Description  Quick-action status update (set directly, not derived)
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path  string               true  "Invoice ID"
// @Param        request  body  updateStatusRequest  true  "Status"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/status [patch]
func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.UpdateStatus(
		c.Request.Context(),
		c.Param("id"),
		invoicedomain.InvoiceStatus(strings.TrimSpace(req.Status)),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}

type recordMilestoneRequest struct {
	Milestone string `json:"milestone"`
	Note      string `json:"note"`
}

// @Summary      Record Milestone
// @Description  Append a tracked lifecycle milestone to the invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Invoice ID"
// @Param        request  body  recordMilestoneRequest  true  "Milestone"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/milestones [post]
func (s *Server) RecordMilestone(c *gin.Context) {
	var req recordMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	invoice, err := s.invoiceSvc.RecordMilestone(c.Request.Context(), c.Param("id"), req.Milestone, req.Note)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": invoice})
}
