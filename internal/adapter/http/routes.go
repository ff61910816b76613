package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health    *Handler
	Loans     *LoanHandler
	Lifecycle *LifecycleHandler
	Portfolio *PortfolioHandler
}

// Register mounts every route on e. Mutating routes go through write.
func Register(e *echo.Echo, h Handlers, write ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)
	e.GET("/loan-products", h.Loans.ListProducts)
	e.GET("/portfolio/summary", h.Portfolio.Summary)

	e.GET("/loans", h.Loans.ListLoans)
	e.POST("/loans", h.Loans.CreateLoan, write...)

	g := e.Group("/loans/:loan_id")
	g.GET("", h.Loans.GetLoan)
	g.GET("/schedule", h.Loans.GetSchedule)
	g.PATCH("/terms", h.Loans.AmendTerms, write...)
	g.POST("/approve", h.Lifecycle.Approve, write...)
	g.POST("/reject", h.Lifecycle.Reject, write...)
	g.POST("/disburse", h.Lifecycle.Disburse, write...)
	g.POST("/activate", h.Lifecycle.Activate, write...)
	g.POST("/default", h.Lifecycle.MarkDefaulted, write...)
	g.GET("/reviews", h.Lifecycle.ListReviews)
	g.GET("/payments", h.Lifecycle.ListPayments)
	g.POST("/payments", h.Lifecycle.RecordPayment, write...)
}
