package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "sacco-lending/internal/domain/loan"
	"sacco-lending/internal/testutil/loanmock"
	uc "sacco-lending/internal/usecase/loan"
)

func noPending(context.Context, string) (*domain.Loan, error) { return nil, gorm.ErrRecordNotFound }

func storedLoan(status domain.Status) *domain.Loan {
	l := &domain.Loan{
		ID:              5,
		LoanID:          testLoanID,
		MemberID:        "MEM-001",
		LoanType:        domain.TypeDevelopment,
		PrincipalAmount: decimal.NewFromInt(10_000_000),
		InterestRate:    decimal.NewFromInt(15),
		TermMonths:      24,
		Status:          status,
		ApplicationDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Guarantors:      []string{"MEM-002"},
		Purpose:         "dairy unit",
	}
	l.MonthlyPayment, _ = domain.ComputeMonthlyPayment(l.PrincipalAmount, l.InterestRate, l.TermMonths)
	return l
}

func TestCreateLoan_Success(t *testing.T) {
	var saved *domain.Loan
	e := newServer(&loanmock.Repo{
		GetPendingLoanByMemberIDFn: noPending,
		CreateFn:                   func(_ context.Context, l *domain.Loan) error { saved = l; return nil },
	}, nil, nil)

	rec := do(t, e, stdhttp.MethodPost, "/loans", map[string]any{
		"member_id":        "MEM-001",
		"loan_type":        "development",
		"principal_amount": 10000000,
		"interest_rate":    15,
		"term_months":      24,
		"guarantors":       []string{"MEM-002", "MEM-003"},
		"purpose":          "dairy unit",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != "pending" || !got.MonthlyPayment.Equal(decimal.RequireFromString("484866.48")) {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if got.MonthlyPaymentText != "UGX 484,866" || len(got.Guarantors) != 2 {
		t.Fatalf("unexpected dto: %+v", got)
	}
	if saved == nil || saved.LoanID != got.LoanID {
		t.Fatalf("loan not persisted: %+v", saved)
	}
}

func TestCreateLoan_BindError(t *testing.T) {
	e := newServer(&loanmock.Repo{}, nil, nil)

	rec := do(t, e, stdhttp.MethodPost, "/loans", `{"member_id":`) // broken JSON
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeErr(t, rec); er.Error != "invalid body" {
		t.Fatalf("error = %q, want %q", er.Error, "invalid body")
	}
}

func TestCreateLoan_ValidationError(t *testing.T) {
	e := newServer(&loanmock.Repo{}, nil, nil) // won't reach the repo

	rec := do(t, e, stdhttp.MethodPost, "/loans", map[string]any{
		"loan_type":        "car",
		"principal_amount": "5000000.015",
		"term_months":      13,
	})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	er := decodeErr(t, rec)
	if er.Error != "validation failed" {
		t.Fatalf("error = %q", er.Error)
	}
	for field, msg := range map[string]string{
		"member_id":        "is required",
		"loan_type":        "must be one of",
		"principal_amount": "at most 2 decimal places",
		"term_months":      "12, 18, 24",
	} {
		if !containsFieldMsg(er.Details, field, msg) {
			t.Fatalf("missing %s detail: %+v", field, er.Details)
		}
	}
}

func TestCreateLoan_DomainErrors(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"member_id":        "MEM-001",
			"loan_type":        "business",
			"principal_amount": 2000000,
			"guarantors":       []string{"MEM-002"},
			"purpose":          "shop stock",
		}
	}

	tests := []struct {
		name     string
		mutate   func(map[string]any)
		pending  func(context.Context, string) (*domain.Loan, error)
		wantCode int
		wantText string
	}{
		{
			name:     "guarantor missing",
			mutate:   func(b map[string]any) { delete(b, "guarantors") },
			pending:  noPending,
			wantCode: stdhttp.StatusUnprocessableEntity,
			wantText: "guarantor",
		},
		{
			name:     "zero principal",
			mutate:   func(b map[string]any) { b["principal_amount"] = 0 },
			pending:  noPending,
			wantCode: stdhttp.StatusUnprocessableEntity,
			wantText: "greater than zero",
		},
		{
			name:     "outside product limits",
			mutate:   func(b map[string]any) { b["principal_amount"] = 500000 },
			pending:  noPending,
			wantCode: stdhttp.StatusUnprocessableEntity,
			wantText: "UGX 1,000,000 to UGX 20,000,000",
		},
		{
			name:   "pending application",
			mutate: func(map[string]any) {},
			pending: func(context.Context, string) (*domain.Loan, error) {
				return storedLoan(domain.StatusPending), nil
			},
			wantCode: stdhttp.StatusConflict,
			wantText: "pending application",
		},
		{
			name:     "storage failure",
			mutate:   func(map[string]any) {},
			pending:  func(context.Context, string) (*domain.Loan, error) { return nil, errors.New("conn reset") },
			wantCode: stdhttp.StatusInternalServerError,
			wantText: "internal error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newServer(&loanmock.Repo{GetPendingLoanByMemberIDFn: tc.pending}, nil, nil)
			body := base()
			tc.mutate(body)
			rec := do(t, e, stdhttp.MethodPost, "/loans", body)
			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tc.wantCode, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.wantText) {
				t.Fatalf("body %s does not mention %q", rec.Body.String(), tc.wantText)
			}
		})
	}
}

func TestGetLoan(t *testing.T) {
	e := newServer(&loanmock.Repo{
		GetByLoanIDFn: func(_ context.Context, loanID string) (*domain.Loan, error) {
			if loanID == testLoanID {
				return storedLoan(domain.StatusApproved), nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}, nil, nil)

	if rec := do(t, e, stdhttp.MethodGet, "/loans/"+testLoanID, nil); rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec := do(t, e, stdhttp.MethodGet, "/loans/"+strings.Repeat("0", 32), nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	rec = do(t, e, stdhttp.MethodGet, "/loans/LN-1", nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if er := decodeErr(t, rec); !containsFieldMsg(er.Details, "loan_id", "32-char") {
		t.Fatalf("missing loan_id detail: %+v", er)
	}
}

func TestGetLoan_MissingPathParam(t *testing.T) {
	e := newEchoWithValidator()
	h := NewLoanHandler(uc.NewUsecase(&loanmock.Repo{}, nil, nil))

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues("")

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestListLoans(t *testing.T) {
	var got domain.ListFilter
	e := newServer(&loanmock.Repo{
		ListFn: func(_ context.Context, f domain.ListFilter) ([]domain.Loan, error) {
			got = f
			return []domain.Loan{*storedLoan(domain.StatusActive)}, nil
		},
	}, nil, nil)

	rec := do(t, e, stdhttp.MethodGet, "/loans?status=active&type=development&member_id=MEM-001&limit=10&offset=20", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	if got.Status != domain.StatusActive || got.LoanType != domain.TypeDevelopment || got.MemberID != "MEM-001" || got.Limit != 10 || got.Offset != 20 {
		t.Fatalf("filter not bound: %+v", got)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	if rec := do(t, e, stdhttp.MethodGet, "/loans?status=lost", nil); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad status filter: code = %d", rec.Code)
	}
	if rec := do(t, e, stdhttp.MethodGet, "/loans?limit=-1", nil); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("negative limit: code = %d", rec.Code)
	}
}

func TestGetSchedule(t *testing.T) {
	e := newServer(&loanmock.Repo{
		GetByLoanIDFn: func(context.Context, string) (*domain.Loan, error) { return storedLoan(domain.StatusPending), nil },
	}, nil, nil)

	rec := do(t, e, stdhttp.MethodGet, "/loans/"+testLoanID+"/schedule", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got uc.ScheduleDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(got.Installments) != 24 || got.Installments[0].DueDate != "2025-02-15" {
		t.Fatalf("unexpected schedule: %d rows, first %+v", len(got.Installments), got.Installments[0])
	}
}

func TestAmendTerms(t *testing.T) {
	current := storedLoan(domain.StatusPending)
	e := newServer(&loanmock.Repo{
		GetByLoanIDForUpdateFn: func(context.Context, string) (*domain.Loan, error) { return current, nil },
	}, nil, nil)
	path := "/loans/" + testLoanID + "/terms"

	if rec := do(t, e, stdhttp.MethodPatch, path, map[string]any{}); rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("empty amend: code = %d", rec.Code)
	}
	if rec := do(t, e, stdhttp.MethodPatch, path, map[string]any{"term_months": 20}); rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("bad term: code = %d", rec.Code)
	}

	rec := do(t, e, stdhttp.MethodPatch, path, map[string]any{"term_months": 36})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("amend: code = %d; body=%s", rec.Code, rec.Body.String())
	}
	if current.TermMonths != 36 {
		t.Fatalf("term not amended: %d", current.TermMonths)
	}

	current.Status = domain.StatusActive
	if rec := do(t, e, stdhttp.MethodPatch, path, map[string]any{"term_months": 48}); rec.Code != stdhttp.StatusConflict {
		t.Fatalf("amend active loan: code = %d", rec.Code)
	}
}

func TestListProducts(t *testing.T) {
	e := newServer(&loanmock.Repo{}, nil, nil)
	rec := do(t, e, stdhttp.MethodGet, "/loan-products", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Products []uc.ProductDTO `json:"products"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Products) != 4 || body.Products[3].Type != domain.TypeBusiness || !body.Products[3].CollateralRequired {
		t.Fatalf("unexpected products: %+v", body.Products)
	}
}
