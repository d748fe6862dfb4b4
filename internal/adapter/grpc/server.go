package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/fintrack-backend/internal/domain"
	"github.com/simaogato/fintrack-backend/internal/usecase/aggregator"
	"github.com/simaogato/fintrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/fintrack-backend/internal/usecase/records"
	"github.com/simaogato/fintrack-backend/internal/usecase/report"
)

// Server implements the FinanceService gRPC server
type Server struct {
	Records          *records.RecordStore
	DashboardService *dashboard.DashboardService
	ReportService    *report.ReportService
	Clock            func() time.Time
}

// NewServer creates a new gRPC server instance
func NewServer(
	recordStore *records.RecordStore,
	dashboardService *dashboard.DashboardService,
	reportService *report.ReportService,
) *Server {
	return &Server{
		Records:          recordStore,
		DashboardService: dashboardService,
		ReportService:    reportService,
		Clock:            time.Now,
	}
}

var _ FinanceServiceServer = (*Server)(nil)

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, _ *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	txns, err := s.Records.ListTransactions(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &ListTransactionsResponse{Transactions: txns}, nil
}

// SearchTransactions handles the SearchTransactions RPC
func (s *Server) SearchTransactions(ctx context.Context, req *SearchTransactionsRequest) (*SearchTransactionsResponse, error) {
	if req.Type != "" && !req.Type.IsValid() {
		return nil, status.Errorf(codes.InvalidArgument, "invalid type %q", req.Type)
	}

	txns, err := s.Records.ListTransactions(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	filtered := aggregator.FilterTransactions(txns, aggregator.TransactionFilter{
		Search:    req.Search,
		Category:  req.Category,
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	page := aggregator.Paginate(filtered, req.Page, req.PerPage)
	return &page, nil
}

// CreateTransaction handles the CreateTransaction RPC
func (s *Server) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*TransactionResponse, error) {
	tx, err := s.Records.CreateTransaction(ctx, records.CreateTransactionInput{
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &TransactionResponse{Transaction: tx}, nil
}

// UpdateTransaction handles the UpdateTransaction RPC
func (s *Server) UpdateTransaction(ctx context.Context, req *UpdateTransactionRequest) (*MutationResponse, error) {
	result, err := s.Records.UpdateTransaction(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, mapError(err)
	}
	return mutationResponse(result), nil
}

// DeleteTransaction handles the DeleteTransaction RPC
func (s *Server) DeleteTransaction(ctx context.Context, req *DeleteRequest) (*MutationResponse, error) {
	result, err := s.Records.DeleteTransaction(ctx, req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return mutationResponse(result), nil
}

// ListGoals handles the ListGoals RPC
func (s *Server) ListGoals(ctx context.Context, req *ListGoalsRequest) (*ListGoalsResponse, error) {
	goalStatus, err := aggregator.ParseGoalStatus(string(req.Status))
	if err != nil {
		return nil, mapError(err)
	}

	views, err := s.DashboardService.ListGoalViews(ctx, goalStatus, s.Clock())
	if err != nil {
		return nil, mapError(err)
	}
	return &ListGoalsResponse{Goals: views}, nil
}

// CreateGoal handles the CreateGoal RPC
func (s *Server) CreateGoal(ctx context.Context, req *CreateGoalRequest) (*GoalResponse, error) {
	goal, err := s.Records.CreateGoal(ctx, records.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &GoalResponse{Goal: goal}, nil
}

// UpdateGoal handles the UpdateGoal RPC
func (s *Server) UpdateGoal(ctx context.Context, req *UpdateGoalRequest) (*MutationResponse, error) {
	result, err := s.Records.UpdateGoal(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, mapError(err)
	}
	return mutationResponse(result), nil
}

// DeleteGoal handles the DeleteGoal RPC
func (s *Server) DeleteGoal(ctx context.Context, req *DeleteRequest) (*MutationResponse, error) {
	result, err := s.Records.DeleteGoal(ctx, req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return mutationResponse(result), nil
}

// AddContribution handles the AddContribution RPC
func (s *Server) AddContribution(ctx context.Context, req *AddContributionRequest) (*MutationResponse, error) {
	result, err := s.Records.AddContribution(ctx, req.GoalID, records.ContributionInput{
		Amount: req.Amount,
		Date:   req.Date,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return mutationResponse(result), nil
}

// GetDashboard handles the GetDashboard RPC
func (s *Server) GetDashboard(ctx context.Context, req *GetDashboardRequest) (*GetDashboardResponse, error) {
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		return nil, mapError(err)
	}

	result, err := s.DashboardService.GetDashboard(ctx, period, s.Clock())
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// ExportReport handles the ExportReport RPC
func (s *Server) ExportReport(ctx context.Context, req *ExportReportRequest) (*ExportReportResponse, error) {
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		return nil, mapError(err)
	}

	export, err := s.ReportService.Export(ctx, period)
	if err != nil {
		return nil, mapError(err)
	}

	return &ExportReportResponse{
		Filename: export.Filename,
		Content:  string(export.Content),
		Snapshot: export.Snapshot,
	}, nil
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		return status.Errorf(codes.Unavailable, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	default:
		return status.Errorf(codes.Internal, "%s", err.Error())
	}
}
