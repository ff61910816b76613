package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"sacco-lending/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	MemberID        string           `json:"member_id"        validate:"required,max=64"`
	LoanType        string           `json:"loan_type"        validate:"required,loantype"`
	PrincipalAmount Amount           `json:"principal_amount" validate:"decplaces=2"`
	InterestRate    *decimal.Decimal `json:"interest_rate"    validate:"omitempty,decplaces=4"`
	TermMonths      int              `json:"term_months"      validate:"omitempty,termmonths"`
	Guarantors      []string         `json:"guarantors"       validate:"omitempty,dive,max=64"`
	Purpose         string           `json:"purpose"          validate:"max=500"`
}

type amendTermsReq struct {
	PrincipalAmount *Amount          `json:"principal_amount" validate:"omitempty,decplaces=2"`
	InterestRate    *decimal.Decimal `json:"interest_rate"    validate:"omitempty,decplaces=4"`
	TermMonths      *int             `json:"term_months"      validate:"omitempty,termmonths"`
}

type listLoansReq struct {
	Status   string `query:"status"`
	Type     string `query:"type"`
	MemberID string `query:"member_id"`
	Limit    int    `query:"limit"  validate:"gte=0"`
	Offset   int    `query:"offset" validate:"gte=0"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateInput{
		MemberID:        req.MemberID,
		LoanType:        req.LoanType,
		PrincipalAmount: req.PrincipalAmount.Decimal,
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
		Guarantors:      req.Guarantors,
		Purpose:         req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	var req listLoansReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	out, err := h.uc.List(c.Request().Context(), loan.ListInput{
		Status:   req.Status,
		LoanType: req.Type,
		MemberID: req.MemberID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": out, "count": len(out)})
}

func (h *LoanHandler) GetSchedule(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	dto, err := h.uc.Schedule(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) AmendTerms(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	var req amendTermsReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	if req.PrincipalAmount == nil && req.InterestRate == nil && req.TermMonths == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nothing to amend"})
	}
	dto, err := h.uc.Amend(c.Request().Context(), loanID, loan.AmendInput{
		PrincipalAmount: optAmount(req.PrincipalAmount),
		InterestRate:    req.InterestRate,
		TermMonths:      req.TermMonths,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"products": h.uc.Products()})
}
