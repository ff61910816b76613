package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sacco-lending/internal/usecase/lifecycle"
	"sacco-lending/pkg/dates"
)

type LifecycleHandler struct{ uc *lifecycle.Usecase }

func NewLifecycleHandler(uc *lifecycle.Usecase) *LifecycleHandler {
	return &LifecycleHandler{uc: uc}
}

type decisionReq struct {
	StaffID string `json:"staff_id" validate:"max=64"`
	Note    string `json:"note"     validate:"max=500"`
}

type disburseReq struct {
	StaffID string `json:"staff_id" validate:"max=64"`
	Note    string `json:"note"     validate:"max=500"`
	// Accept canonical date `YYYY-MM-DD`; empty means today
	DisbursementDate string `json:"disbursement_date" validate:"omitempty,datetime=2006-01-02"`
}

type paymentReq struct {
	Amount    Amount `json:"amount"    validate:"decplaces=2"`
	Channel   string `json:"channel"   validate:"required,channel"`
	Provider  string `json:"provider"  validate:"omitempty,oneof=mtn airtel"`
	Reference string `json:"reference" validate:"max=64"`
	StaffID   string `json:"staff_id"  validate:"max=64"`
	PaidAt    string `json:"paid_at"`
}

type decisionFunc func(context.Context, lifecycle.DecisionInput) (*lifecycle.ReviewDTO, error)

func (h *LifecycleHandler) decision(c echo.Context, call decisionFunc) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	var req decisionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := call(c.Request().Context(), lifecycle.DecisionInput{
		LoanID:  loanID,
		StaffID: staffID(c, req.StaffID),
		Note:    req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LifecycleHandler) Approve(c echo.Context) error { return h.decision(c, h.uc.Approve) }

func (h *LifecycleHandler) Reject(c echo.Context) error { return h.decision(c, h.uc.Reject) }

func (h *LifecycleHandler) Activate(c echo.Context) error { return h.decision(c, h.uc.Activate) }

func (h *LifecycleHandler) MarkDefaulted(c echo.Context) error { return h.decision(c, h.uc.MarkDefaulted) }

func (h *LifecycleHandler) Disburse(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	var req disburseReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	var on time.Time
	if req.DisbursementDate != "" {
		// already format-checked by the validator
		on, _ = dates.ParseDate(req.DisbursementDate)
	}
	dto, err := h.uc.Disburse(c.Request().Context(), lifecycle.DisburseInput{
		LoanID:           loanID,
		StaffID:          staffID(c, req.StaffID),
		Note:             req.Note,
		DisbursementDate: on,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LifecycleHandler) RecordPayment(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	var req paymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	var paidAt time.Time
	if req.PaidAt != "" {
		if paidAt, err = dates.ParseDate(req.PaidAt); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "validation failed",
				Details: []FieldError{{Field: "paid_at", Message: "must be YYYY-MM-DD or RFC3339"}},
			})
		}
	}
	dto, err := h.uc.RecordPayment(c.Request().Context(), lifecycle.PaymentInput{
		LoanID:    loanID,
		Amount:    req.Amount.Decimal,
		Channel:   req.Channel,
		Provider:  req.Provider,
		Reference: req.Reference,
		StaffID:   staffID(c, req.StaffID),
		PaidAt:    paidAt,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LifecycleHandler) ListPayments(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	out, err := h.uc.Repayments(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"payments": out, "count": len(out)})
}

func (h *LifecycleHandler) ListReviews(c echo.Context) error {
	loanID, ok, err := loanIDParam(c)
	if !ok {
		return err
	}
	out, err := h.uc.Reviews(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"reviews": out, "count": len(out)})
}
