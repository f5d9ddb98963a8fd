package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/middleware"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/economics"
)

// SharesHandler exposes the share economics engine over HTTP so clients can
// preview what an investment converts to before committing it.
type SharesHandler struct {
	tables economics.Tables
}

func NewSharesHandler(tables economics.Tables) *SharesHandler {
	return &SharesHandler{tables: tables}
}

type sharePreviewRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	// Role overrides the caller's primary role for the multiplier lookup.
	Role            string  `json:"role,omitempty"`
	Referrals       int     `json:"referrals,omitempty" validate:"gte=0"`
	TotalInvestment float64 `json:"total_investment,omitempty" validate:"gte=0"`
}

type sharePreviewResponse struct {
	TableVersion   string  `json:"table_version"`
	Role           string  `json:"role"`
	BaseShares     float64 `json:"base_shares"`
	Shares         float64 `json:"shares"`
	ReferralBonus  float64 `json:"referral_bonus"`
	VIPBonus       float64 `json:"vip_bonus"`
	MaxoutAmount   float64 `json:"maxout_amount"`
	MaxoutUnlimited bool   `json:"maxout_unlimited"`
	WithdrawalFee  float64 `json:"withdrawal_fee"`
}

// Preview converts a monetary amount to share units for the caller's role.
//
// @Summary      Preview share conversion
// @Tags         shares
// @Accept       json
// @Produce      json
// @Param        body  body      sharePreviewRequest  true  "Amount and optional role/referral data"
// @Success      200   {object}  sharePreviewResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /shares/preview [post]
func (h *SharesHandler) Preview(c echo.Context) error {
	identity, err := middleware.IdentityFromContext(c)
	if err != nil {
		return err
	}

	var req sharePreviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	role := req.Role
	if role == "" {
		role = identity.Role
	}

	maxout, unlimited := h.tables.MaxoutAmount(req.Amount, role)
	resp := sharePreviewResponse{
		TableVersion:    h.tables.Version,
		Role:            role,
		BaseShares:      economics.AmountToShares(req.Amount),
		Shares:          h.tables.SharesFromRole(role, req.Amount),
		ReferralBonus:   economics.ReferralBonus(req.Referrals),
		VIPBonus:        economics.VIPBonus(req.TotalInvestment),
		MaxoutAmount:    maxout,
		MaxoutUnlimited: unlimited,
		WithdrawalFee:   economics.WithdrawalFee(req.Amount),
	}
	return c.JSON(http.StatusOK, resp)
}
