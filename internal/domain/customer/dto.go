// internal/domain/customer/dto.go
package customer

type RegisterCustomerRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Tier     Tier   `json:"tier" binding:"omitempty,oneof=normal student"`
}

// UpdateCustomerRequest covers the admin "edit record" path. Points and
// History may be rewritten wholesale here; normal point movement goes
// through the loyalty operations instead.
type UpdateCustomerRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Tier     *Tier   `json:"tier" binding:"omitempty,oneof=normal student"`
	Points   *int64  `json:"points"`
	History  *string `json:"history"`
}

type CustomerListFilters struct {
	Tier      Tier   `form:"tier" binding:"omitempty,oneof=normal student"`
	Search    string `form:"search"` // by name or phone
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"` // created_at, full_name, points
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type CustomerListResponse struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// DashboardResponse is what the customer-facing balance page renders.
// Monthly totals are formatted to one decimal place at this edge only.
type DashboardResponse struct {
	Customer           *Customer `json:"customer"`
	CurrentMonthSpend  string    `json:"current_month_spend"`
	PreviousMonthSpend string    `json:"previous_month_spend"`
}
