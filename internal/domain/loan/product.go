package loan

import "github.com/shopspring/decimal"

// Product is the SACCO's configuration for one loan type.
type Product struct {
	Type               Type            `json:"loan_type"`
	Name               string          `json:"name"`
	MinAmount          decimal.Decimal `json:"min_amount"`
	MaxAmount          decimal.Decimal `json:"max_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	DefaultTermMonths  int             `json:"default_term_months"`
	CollateralRequired bool            `json:"collateral_required"`
}

var catalog = map[Type]Product{
	TypeEmergency: {
		Type: TypeEmergency, Name: "Emergency Loan",
		MinAmount: decimal.NewFromInt(100_000), MaxAmount: decimal.NewFromInt(3_000_000),
		InterestRate: decimal.NewFromInt(12), DefaultTermMonths: 12,
	},
	TypeDevelopment: {
		Type: TypeDevelopment, Name: "Development Loan",
		MinAmount: decimal.NewFromInt(500_000), MaxAmount: decimal.NewFromInt(15_000_000),
		InterestRate: decimal.NewFromInt(15), DefaultTermMonths: 36, CollateralRequired: true,
	},
	TypeEducation: {
		Type: TypeEducation, Name: "Education Loan",
		MinAmount: decimal.NewFromInt(200_000), MaxAmount: decimal.NewFromInt(8_000_000),
		InterestRate: decimal.NewFromInt(10), DefaultTermMonths: 48,
	},
	TypeBusiness: {
		Type: TypeBusiness, Name: "Business Loan",
		MinAmount: decimal.NewFromInt(1_000_000), MaxAmount: decimal.NewFromInt(20_000_000),
		InterestRate: decimal.NewFromInt(18), DefaultTermMonths: 24, CollateralRequired: true,
	},
}

func ProductFor(t Type) (Product, bool) {
	p, ok := catalog[t]
	return p, ok
}

// Products returns the catalog in Types() order.
func Products() []Product {
	out := make([]Product, 0, len(types))
	for _, t := range types {
		out = append(out, catalog[t])
	}
	return out
}

// Allows reports whether principal lies within [MinAmount, MaxAmount].
func (p Product) Allows(principal decimal.Decimal) bool {
	return !principal.LessThan(p.MinAmount) && !principal.GreaterThan(p.MaxAmount)
}
