// internal/handlers/reward/reward.go
package reward

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"kaokente-service/internal/domain/reward"
	xerrors "kaokente-service/internal/pkg/errors"
	"kaokente-service/internal/pkg/response"
	"kaokente-service/internal/repository/postgres"
	"kaokente-service/internal/rewards"
)

type RewardHandler struct {
	rewardRepo *postgres.RewardRepository
}

func NewRewardHandler(rewardRepo *postgres.RewardRepository) *RewardHandler {
	return &RewardHandler{
		rewardRepo: rewardRepo,
	}
}

type rewardView struct {
	reward.Reward
	Cost int64 `json:"cost"`
}

// List returns the catalog with resolved point costs. Public: the
// reward board hangs next to the counter.
func (h *RewardHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	items, err := h.rewardRepo.List(c.Request.Context(), includeInactive)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list rewards", err)
		return
	}

	views := make([]rewardView, 0, len(items))
	for _, r := range items {
		views = append(views, rewardView{Reward: r, Cost: rewards.CostOf(r)})
	}

	response.Success(c, http.StatusOK, "rewards retrieved", views)
}

// Create adds a catalog item. Either a fixed point cost or a euro price
// must be given; the price converts at one hundred points per whole
// euro, rounded up.
func (h *RewardHandler) Create(c *gin.Context) {
	var req reward.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	price := decimal.Zero
	if req.Price != "" {
		var err error
		price, err = decimal.NewFromString(req.Price)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid price", err)
			return
		}
	}
	if req.PointCost <= 0 && price.LessThanOrEqual(decimal.Zero) {
		response.Error(c, http.StatusBadRequest, "either point_cost or price is required", nil)
		return
	}

	r := &reward.Reward{
		Name:      req.Name,
		PointCost: req.PointCost,
		Price:     price,
		Tags:      pq.StringArray(req.Tags),
		Active:    true,
	}

	if err := h.rewardRepo.Create(c.Request.Context(), r); err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			response.Error(c, http.StatusConflict, "reward already exists", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create reward", err)
		return
	}

	response.Success(c, http.StatusCreated, "reward created", rewardView{Reward: *r, Cost: rewards.CostOf(*r)})
}

// Deactivate retires a reward from the catalog.
func (h *RewardHandler) Deactivate(c *gin.Context) {
	name := c.Param("name")

	if err := h.rewardRepo.Deactivate(c.Request.Context(), name); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "reward not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to deactivate reward", err)
		return
	}

	response.Success(c, http.StatusOK, "reward deactivated", nil)
}
