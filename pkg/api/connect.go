package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// MatchServiceName is the fully-qualified name of the MatchService service.
const MatchServiceName = "invoicematch.v1.MatchService"

// Procedure paths, in the form "/<service>/<method>".
const (
	MatchServiceImportInvoicesProcedure = "/invoicematch.v1.MatchService/ImportInvoices"
	MatchServiceImportEntriesProcedure  = "/invoicematch.v1.MatchService/ImportEntries"
	MatchServiceComputeMatchesProcedure = "/invoicematch.v1.MatchService/ComputeMatches"
	MatchServiceListMatchesProcedure    = "/invoicematch.v1.MatchService/ListMatches"
	MatchServiceReviewMatchesProcedure  = "/invoicematch.v1.MatchService/ReviewMatches"
	MatchServiceListDecisionsProcedure  = "/invoicematch.v1.MatchService/ListDecisions"
)

// MatchServiceHandler is implemented by the server.
type MatchServiceHandler interface {
	ImportInvoices(context.Context, *connect.Request[ImportInvoicesRequest]) (*connect.Response[ImportInvoicesResponse], error)
	ImportEntries(context.Context, *connect.Request[ImportEntriesRequest]) (*connect.Response[ImportEntriesResponse], error)
	ComputeMatches(context.Context, *connect.Request[ComputeMatchesRequest]) (*connect.Response[ComputeMatchesResponse], error)
	ListMatches(context.Context, *connect.Request[ListMatchesRequest]) (*connect.Response[ListMatchesResponse], error)
	ReviewMatches(context.Context, *connect.Request[ReviewMatchesRequest]) (*connect.Response[ReviewMatchesResponse], error)
	ListDecisions(context.Context, *connect.Request[ListDecisionsRequest]) (*connect.Response[ListDecisionsResponse], error)
}

// NewMatchServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewMatchServiceHandler(svc MatchServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	handlers := map[string]http.Handler{
		MatchServiceImportInvoicesProcedure: connect.NewUnaryHandler(MatchServiceImportInvoicesProcedure, svc.ImportInvoices, opts...),
		MatchServiceImportEntriesProcedure:  connect.NewUnaryHandler(MatchServiceImportEntriesProcedure, svc.ImportEntries, opts...),
		MatchServiceComputeMatchesProcedure: connect.NewUnaryHandler(MatchServiceComputeMatchesProcedure, svc.ComputeMatches, opts...),
		MatchServiceListMatchesProcedure:    connect.NewUnaryHandler(MatchServiceListMatchesProcedure, svc.ListMatches, opts...),
		MatchServiceReviewMatchesProcedure:  connect.NewUnaryHandler(MatchServiceReviewMatchesProcedure, svc.ReviewMatches, opts...),
		MatchServiceListDecisionsProcedure:  connect.NewUnaryHandler(MatchServiceListDecisionsProcedure, svc.ListDecisions, opts...),
	}

	return "/" + MatchServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// MatchServiceClient is a client for the invoicematch.v1.MatchService service.
type MatchServiceClient struct {
	importInvoices *connect.Client[ImportInvoicesRequest, ImportInvoicesResponse]
	importEntries  *connect.Client[ImportEntriesRequest, ImportEntriesResponse]
	computeMatches *connect.Client[ComputeMatchesRequest, ComputeMatchesResponse]
	listMatches    *connect.Client[ListMatchesRequest, ListMatchesResponse]
	reviewMatches  *connect.Client[ReviewMatchesRequest, ReviewMatchesResponse]
	listDecisions  *connect.Client[ListDecisionsRequest, ListDecisionsResponse]
}

// NewMatchServiceClient constructs a client for the MatchService service.
// baseURL is the server root, e.g. "http://localhost:8080".
func NewMatchServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *MatchServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &MatchServiceClient{
		importInvoices: connect.NewClient[ImportInvoicesRequest, ImportInvoicesResponse](httpClient, baseURL+MatchServiceImportInvoicesProcedure, opts...),
		importEntries:  connect.NewClient[ImportEntriesRequest, ImportEntriesResponse](httpClient, baseURL+MatchServiceImportEntriesProcedure, opts...),
		computeMatches: connect.NewClient[ComputeMatchesRequest, ComputeMatchesResponse](httpClient, baseURL+MatchServiceComputeMatchesProcedure, opts...),
		listMatches:    connect.NewClient[ListMatchesRequest, ListMatchesResponse](httpClient, baseURL+MatchServiceListMatchesProcedure, opts...),
		reviewMatches:  connect.NewClient[ReviewMatchesRequest, ReviewMatchesResponse](httpClient, baseURL+MatchServiceReviewMatchesProcedure, opts...),
		listDecisions:  connect.NewClient[ListDecisionsRequest, ListDecisionsResponse](httpClient, baseURL+MatchServiceListDecisionsProcedure, opts...),
	}
}

func (c *MatchServiceClient) ImportInvoices(ctx context.Context, req *connect.Request[ImportInvoicesRequest]) (*connect.Response[ImportInvoicesResponse], error) {
	return c.importInvoices.CallUnary(ctx, req)
}

func (c *MatchServiceClient) ImportEntries(ctx context.Context, req *connect.Request[ImportEntriesRequest]) (*connect.Response[ImportEntriesResponse], error) {
	return c.importEntries.CallUnary(ctx, req)
}

func (c *MatchServiceClient) ComputeMatches(ctx context.Context, req *connect.Request[ComputeMatchesRequest]) (*connect.Response[ComputeMatchesResponse], error) {
	return c.computeMatches.CallUnary(ctx, req)
}

func (c *MatchServiceClient) ListMatches(ctx context.Context, req *connect.Request[ListMatchesRequest]) (*connect.Response[ListMatchesResponse], error) {
	return c.listMatches.CallUnary(ctx, req)
}

func (c *MatchServiceClient) ReviewMatches(ctx context.Context, req *connect.Request[ReviewMatchesRequest]) (*connect.Response[ReviewMatchesResponse], error) {
	return c.reviewMatches.CallUnary(ctx, req)
}

func (c *MatchServiceClient) ListDecisions(ctx context.Context, req *connect.Request[ListDecisionsRequest]) (*connect.Response[ListDecisionsResponse], error) {
	return c.listDecisions.CallUnary(ctx, req)
}
