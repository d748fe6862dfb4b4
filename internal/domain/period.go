package domain

import "fmt"

// Period is a relative time window used to scope dashboard aggregates
type Period string

const (
	PeriodMonth       Period = "month"
	PeriodThreeMonths Period = "3months"
	PeriodYear        Period = "year"
	PeriodAll         Period = "all"
)

// ParsePeriod validates a period selector. An empty string selects PeriodMonth.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodMonth, nil
	case PeriodMonth, PeriodThreeMonths, PeriodYear, PeriodAll:
		return p, nil
	default:
		return "", NewValidationError("period", fmt.Sprintf("unknown period %q", s))
	}
}

// Label returns the pt-BR label shown next to the period
func (p Period) Label() string {
	switch p {
	case PeriodMonth:
		return "Último mês"
	case PeriodThreeMonths:
		return "Últimos 3 meses"
	case PeriodYear:
		return "Último ano"
	default:
		return "Todo o período"
	}
}
