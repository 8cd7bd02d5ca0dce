// internal/handlers/customer/customer.go
package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kaokente-service/internal/domain/customer"
	xerrors "kaokente-service/internal/pkg/errors"
	"kaokente-service/internal/pkg/response"
	service "kaokente-service/internal/service/customer"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// Register creates a new customer record.
func (h *CustomerHandler) Register(c *gin.Context) {
	var req customer.RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrDuplicateEntry):
			response.Error(c, http.StatusConflict, "customer already exists", nil)
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "invalid customer data", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to register customer", err)
		}
		return
	}

	response.Success(c, http.StatusCreated, "customer registered", result)
}

// Get retrieves a customer by phone. Public: this is the "see my
// points" lookup from the counter.
func (h *CustomerHandler) Get(c *gin.Context) {
	phone := c.Param("phone")

	result, err := h.customerService.Get(c.Request.Context(), phone)
	if err != nil {
		response.NotFound(c, "customer not found")
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// Update handles the admin edit path.
func (h *CustomerHandler) Update(c *gin.Context) {
	phone := c.Param("phone")

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), phone, &req)
	if err != nil {
		switch {
		case xerrors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "customer not found")
		case xerrors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "invalid customer data", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update customer", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "customer updated", result)
}

// Delete removes a customer record.
func (h *CustomerHandler) Delete(c *gin.Context) {
	phone := c.Param("phone")

	if err := h.customerService.Delete(c.Request.Context(), phone); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted", nil)
}

// List returns customers with filters and pagination.
func (h *CustomerHandler) List(c *gin.Context) {
	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	result, err := h.customerService.List(c.Request.Context(), &filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", result)
}

// Stats returns aggregate counts for the admin overview.
func (h *CustomerHandler) Stats(c *gin.Context) {
	result, err := h.customerService.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats retrieved", result)
}
