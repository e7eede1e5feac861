package handler

import (
	"serving-broker/internal/adapter/http/dto"
	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles main and sub-account endpoints.
type AccountHandler struct {
	accounts ports.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Deposit handles POST /api/v1/account/deposit.
func (h *AccountHandler) Deposit(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := h.accounts.Deposit(c.Request.Context(), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{MainBalance: balance})
}

// Withdraw handles POST /api/v1/account/withdraw.
func (h *AccountHandler) Withdraw(c *gin.Context) {
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := h.accounts.Withdraw(c.Request.Context(), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{MainBalance: balance})
}

// Transfer handles POST /api/v1/account/transfer.
func (h *AccountHandler) Transfer(c *gin.Context) {
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	provider, _ := dto.ParseAddress(req.Provider)

	balance, err := h.accounts.TransferFund(c.Request.Context(), provider, domain.ServiceType(req.ServiceType), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.TransferResponse{Provider: provider.Hex(), SubBalance: balance})
}

// Retrieve handles POST /api/v1/account/retrieve. An empty body sweeps
// every sub-account.
func (h *AccountHandler) Retrieve(c *gin.Context) {
	var req dto.RetrieveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}

	result, err := h.accounts.RetrieveFund(c.Request.Context(), domain.LedgerKind(req.Kind))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toRetrieveResponse(result))
}

// Ledger handles GET /api/v1/account/ledger.
func (h *AccountHandler) Ledger(c *gin.Context) {
	snap, err := h.accounts.GetLedger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toLedgerResponse(snap))
}

func toRetrieveResponse(r *ports.RetrieveResult) dto.RetrieveResponse {
	resp := dto.RetrieveResponse{
		Kind:        string(r.Kind),
		Outcomes:    make([]dto.RefundOutcomeResponse, 0, len(r.Outcomes)),
		MainBalance: r.MainBalance,
	}
	for _, o := range r.Outcomes {
		out := dto.RefundOutcomeResponse{
			Provider: o.Provider.Hex(),
			Action:   string(o.Action),
			Amount:   o.Amount,
			TxID:     o.TxID,
		}
		if o.NextUnlock != nil {
			out.NextUnlock = dto.FormatTime(*o.NextUnlock)
		}
		resp.Outcomes = append(resp.Outcomes, out)
	}
	return resp
}

func toLedgerResponse(s *domain.LedgerSnapshot) dto.LedgerResponse {
	resp := dto.LedgerResponse{
		User:        s.User.Hex(),
		MainBalance: s.MainBalance,
		LockedTotal: s.LockedTotal,
		SubAccounts: make([]dto.SubAccountResponse, 0, len(s.SubAccounts)),
		TakenAt:     dto.FormatTime(s.TakenAt),
	}
	for i := range s.SubAccounts {
		sub := &s.SubAccounts[i]
		refunds := make([]dto.RefundResponse, 0, len(sub.PendingRefunds))
		for _, r := range sub.PendingRefunds {
			refunds = append(refunds, dto.RefundResponse{
				ID:          r.ID.String(),
				Amount:      r.Amount,
				RequestedAt: dto.FormatTime(r.RequestedAt),
				UnlockAt:    dto.FormatTime(r.UnlockAt),
			})
		}
		resp.SubAccounts = append(resp.SubAccounts, dto.SubAccountResponse{
			Provider:       sub.Provider.Hex(),
			Kind:           string(sub.Kind),
			Balance:        sub.Balance,
			Spare:          sub.Spare(),
			PendingRefunds: refunds,
		})
	}
	return resp
}
