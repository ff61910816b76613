package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"sacco-lending/internal/domain/loan"
)

// HeaderActorID names the staff member driving a request; body staff_id wins.
const HeaderActorID = "X-Actor-Id"

// writeError maps domain errors → HTTP codes.
func writeError(c echo.Context, err error) error {
	var verr *loan.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]FieldError, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, FieldError{Field: f.Field, Message: f.Message})
		}
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: loan.ErrValidation.Error(), Details: details})
	case errors.Is(err, loan.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrPendingApplication):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loan.ErrInvalidAmount),
		errors.Is(err, loan.ErrInvalidPrincipal),
		errors.Is(err, loan.ErrInvalidTerm),
		errors.Is(err, loan.ErrInvalidRate),
		errors.Is(err, loan.ErrOutsideProductLimits):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		c.Set("error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

type loanPath struct {
	LoanID string `param:"loan_id" validate:"hex32"`
}

// loanIDParam returns the :loan_id path param, or ok=false after writing a 400.
func loanIDParam(c echo.Context) (string, bool, error) {
	p := loanPath{LoanID: c.Param("loan_id")}
	if err := c.Validate(p); err != nil {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid loan_id path param",
			Details: ToFieldErrors(err),
		})
	}
	return p.LoanID, true, nil
}

func staffID(c echo.Context, fromBody string) string {
	if s := strings.TrimSpace(fromBody); s != "" {
		return s
	}
	return strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
}
