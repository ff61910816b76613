package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sacco-lending/internal/usecase/portfolio"
)

type PortfolioHandler struct{ uc *portfolio.Usecase }

func NewPortfolioHandler(uc *portfolio.Usecase) *PortfolioHandler { return &PortfolioHandler{uc: uc} }

func (h *PortfolioHandler) Summary(c echo.Context) error {
	dto, err := h.uc.Summary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
