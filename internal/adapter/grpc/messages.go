package grpc

import (
	"github.com/shopspring/decimal"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/aggregator"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/fintrack-backend/internal/usecase/report"
)

// Request and response payloads. On the wire each one travels as a
// google.protobuf.Struct holding its JSON form.

type ListTransactionsRequest struct{}

type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type SearchTransactionsRequest struct {
	Search    string                 `json:"search,omitempty"`
	Category  string                 `json:"category,omitempty"`
	Type      domain.TransactionType `json:"type,omitempty"`
	StartDate *domain.Date           `json:"startDate,omitempty"`
	EndDate   *domain.Date           `json:"endDate,omitempty"`
	Page      int                    `json:"page,omitempty"`
	PerPage   int                    `json:"perPage,omitempty"`
}

type SearchTransactionsResponse = aggregator.Page[domain.Transaction]

type CreateTransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Date        domain.Date            `json:"date"`
}

type TransactionResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
}

type UpdateTransactionRequest struct {
	ID    string                  `json:"id"`
	Patch domain.TransactionPatch `json:"patch"`
}

type DeleteRequest struct {
	ID string `json:"id"`
}

// MutationResponse carries "applied" or "not_found". Both are successes.
type MutationResponse struct {
	Result string `json:"result"`
}

type ListGoalsRequest struct {
	Status aggregator.GoalStatus `json:"status,omitempty"`
}

type ListGoalsResponse struct {
	Goals []dashboard.GoalView `json:"goals"`
}

type CreateGoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     domain.Date     `json:"deadline"`
}

type GoalResponse struct {
	Goal *domain.Goal `json:"goal"`
}

type UpdateGoalRequest struct {
	ID    string           `json:"id"`
	Patch domain.GoalPatch `json:"patch"`
}

type AddContributionRequest struct {
	GoalID string          `json:"goalId"`
	Amount decimal.Decimal `json:"amount"`
	Date   domain.Date     `json:"date"`
}

type GetDashboardRequest struct {
	Period string `json:"period,omitempty"`
}

type GetDashboardResponse = dashboard.Dashboard

type ExportReportRequest struct {
	Period string `json:"period,omitempty"`
}

type ExportReportResponse struct {
	Filename string           `json:"filename"`
	Content  string           `json:"content"`
	Snapshot *report.Snapshot `json:"snapshot,omitempty"`
}

func mutationResponse(result domain.MutationResult) *MutationResponse {
	return &MutationResponse{Result: result.String()}
}
