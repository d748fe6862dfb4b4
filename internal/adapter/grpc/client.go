package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a typed FinanceService client over any gRPC connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a new FinanceService client
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) ListTransactions(ctx context.Context, req *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsResponse](ctx, c, MethodListTransactions, req, opts)
}

func (c *Client) SearchTransactions(ctx context.Context, req *SearchTransactionsRequest, opts ...grpc.CallOption) (*SearchTransactionsResponse, error) {
	return invoke[SearchTransactionsResponse](ctx, c, MethodSearchTransactions, req, opts)
}

func (c *Client) CreateTransaction(ctx context.Context, req *CreateTransactionRequest, opts ...grpc.CallOption) (*TransactionResponse, error) {
	return invoke[TransactionResponse](ctx, c, MethodCreateTransaction, req, opts)
}

func (c *Client) UpdateTransaction(ctx context.Context, req *UpdateTransactionRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c, MethodUpdateTransaction, req, opts)
}

func (c *Client) DeleteTransaction(ctx context.Context, req *DeleteRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c, MethodDeleteTransaction, req, opts)
}

func (c *Client) ListGoals(ctx context.Context, req *ListGoalsRequest, opts ...grpc.CallOption) (*ListGoalsResponse, error) {
	return invoke[ListGoalsResponse](ctx, c, MethodListGoals, req, opts)
}

func (c *Client) CreateGoal(ctx context.Context, req *CreateGoalRequest, opts ...grpc.CallOption) (*GoalResponse, error) {
	return invoke[GoalResponse](ctx, c, MethodCreateGoal, req, opts)
}

func (c *Client) UpdateGoal(ctx context.Context, req *UpdateGoalRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c, MethodUpdateGoal, req, opts)
}

func (c *Client) DeleteGoal(ctx context.Context, req *DeleteRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c, MethodDeleteGoal, req, opts)
}

func (c *Client) AddContribution(ctx context.Context, req *AddContributionRequest, opts ...grpc.CallOption) (*MutationResponse, error) {
	return invoke[MutationResponse](ctx, c, MethodAddContribution, req, opts)
}

func (c *Client) GetDashboard(ctx context.Context, req *GetDashboardRequest, opts ...grpc.CallOption) (*GetDashboardResponse, error) {
	return invoke[GetDashboardResponse](ctx, c, MethodGetDashboard, req, opts)
}

func (c *Client) ExportReport(ctx context.Context, req *ExportReportRequest, opts ...grpc.CallOption) (*ExportReportResponse, error) {
	return invoke[ExportReportResponse](ctx, c, MethodExportReport, req, opts)
}

func invoke[Resp any](ctx context.Context, c *Client, method string, req any, opts []grpc.CallOption) (*Resp, error) {
	in, err := toStruct(req)
	if err != nil {
		return nil, err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}

	resp := new(Resp)
	if err := fromStruct(out, resp); err != nil {
		return nil, err
	}
	return resp, nil
}
