package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "fintrack.v1.FinanceService"

// Method names of FinanceService
const (
	MethodListTransactions   = "ListTransactions"
	MethodSearchTransactions = "SearchTransactions"
	MethodCreateTransaction  = "CreateTransaction"
	MethodUpdateTransaction  = "UpdateTransaction"
	MethodDeleteTransaction  = "DeleteTransaction"
	MethodListGoals          = "ListGoals"
	MethodCreateGoal         = "CreateGoal"
	MethodUpdateGoal         = "UpdateGoal"
	MethodDeleteGoal         = "DeleteGoal"
	MethodAddContribution    = "AddContribution"
	MethodGetDashboard       = "GetDashboard"
	MethodExportReport       = "ExportReport"
)

// FinanceServiceServer is the server API for FinanceService
type FinanceServiceServer interface {
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	SearchTransactions(context.Context, *SearchTransactionsRequest) (*SearchTransactionsResponse, error)
	CreateTransaction(context.Context, *CreateTransactionRequest) (*TransactionResponse, error)
	UpdateTransaction(context.Context, *UpdateTransactionRequest) (*MutationResponse, error)
	DeleteTransaction(context.Context, *DeleteRequest) (*MutationResponse, error)
	ListGoals(context.Context, *ListGoalsRequest) (*ListGoalsResponse, error)
	CreateGoal(context.Context, *CreateGoalRequest) (*GoalResponse, error)
	UpdateGoal(context.Context, *UpdateGoalRequest) (*MutationResponse, error)
	DeleteGoal(context.Context, *DeleteRequest) (*MutationResponse, error)
	AddContribution(context.Context, *AddContributionRequest) (*MutationResponse, error)
	GetDashboard(context.Context, *GetDashboardRequest) (*GetDashboardResponse, error)
	ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error)
}

// FinanceServiceDesc describes FinanceService for grpc.Server.RegisterService
var FinanceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FinanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListTransactions, FinanceServiceServer.ListTransactions),
		unary(MethodSearchTransactions, FinanceServiceServer.SearchTransactions),
		unary(MethodCreateTransaction, FinanceServiceServer.CreateTransaction),
		unary(MethodUpdateTransaction, FinanceServiceServer.UpdateTransaction),
		unary(MethodDeleteTransaction, FinanceServiceServer.DeleteTransaction),
		unary(MethodListGoals, FinanceServiceServer.ListGoals),
		unary(MethodCreateGoal, FinanceServiceServer.CreateGoal),
		unary(MethodUpdateGoal, FinanceServiceServer.UpdateGoal),
		unary(MethodDeleteGoal, FinanceServiceServer.DeleteGoal),
		unary(MethodAddContribution, FinanceServiceServer.AddContribution),
		unary(MethodGetDashboard, FinanceServiceServer.GetDashboard),
		unary(MethodExportReport, FinanceServiceServer.ExportReport),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterFinanceServiceServer registers srv with s
func RegisterFinanceServiceServer(s grpc.ServiceRegistrar, srv FinanceServiceServer) {
	s.RegisterService(&FinanceServiceDesc, srv)
}

// unary adapts a typed method to a MethodDesc. The request Struct is decoded
// inside the handler so interceptors see the raw wire message.
func unary[Req, Resp any](name string, call func(FinanceServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name

	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, raw any) (any, error) {
				req := new(Req)
				if err := fromStruct(raw.(*structpb.Struct), req); err != nil {
					return nil, status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
				}

				resp, err := call(srv.(FinanceServiceServer), ctx, req)
				if err != nil {
					return nil, err
				}

				out, err := toStruct(resp)
				if err != nil {
					return nil, status.Errorf(codes.Internal, "%v", err)
				}
				return out, nil
			}

			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
