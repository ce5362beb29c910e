package grpc

// proto.go defines the gRPC server interface for tradein.v1.TradeInService.
// Messages are the JSON-tagged application DTOs carried by the json codec,
// so there is no generated protobuf package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "tradein.v1.TradeInService"

// TradeInServiceServer is the server API for TradeInService.
type TradeInServiceServer interface {
	ValidateIdentity(context.Context, *ValidateIdentityRequest) (*ValidateIdentityResponse, error)
	CalculateOffer(context.Context, *CalculateOfferRequest) (*CalculateOfferResponse, error)
	SubmitAssessment(context.Context, *SubmitAssessmentRequest) (*AssessmentResponse, error)
	ReviewAssessment(context.Context, *ReviewAssessmentRequest) (*AssessmentResponse, error)
	CompletePayout(context.Context, *CompletePayoutRequest) (*AssessmentResponse, error)
	CancelAssessment(context.Context, *CancelAssessmentRequest) (*AssessmentResponse, error)
	GetAssessment(context.Context, *GetAssessmentRequest) (*AssessmentResponse, error)
	ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error)
	ListAuditTrail(context.Context, *ListAuditTrailRequest) (*AuditTrailResponse, error)
	BlockIdentity(context.Context, *BlockIdentityRequest) (*BlockedIdentityResponse, error)
	ListQuestions(context.Context, *ListQuestionsRequest) (*ListQuestionsResponse, error)
	mustEmbedUnimplementedTradeInServiceServer()
}

// UnimplementedTradeInServiceServer provides forward-compatible default implementations.
type UnimplementedTradeInServiceServer struct{}

func (UnimplementedTradeInServiceServer) ValidateIdentity(context.Context, *ValidateIdentityRequest) (*ValidateIdentityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ValidateIdentity not implemented")
}
func (UnimplementedTradeInServiceServer) CalculateOffer(context.Context, *CalculateOfferRequest) (*CalculateOfferResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CalculateOffer not implemented")
}
func (UnimplementedTradeInServiceServer) SubmitAssessment(context.Context, *SubmitAssessmentRequest) (*AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitAssessment not implemented")
}
func (UnimplementedTradeInServiceServer) ReviewAssessment(context.Context, *ReviewAssessmentRequest) (*AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReviewAssessment not implemented")
}
func (UnimplementedTradeInServiceServer) CompletePayout(context.Context, *CompletePayoutRequest) (*AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CompletePayout not implemented")
}
func (UnimplementedTradeInServiceServer) CancelAssessment(context.Context, *CancelAssessmentRequest) (*AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelAssessment not implemented")
}
func (UnimplementedTradeInServiceServer) GetAssessment(context.Context, *GetAssessmentRequest) (*AssessmentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetAssessment not implemented")
}
func (UnimplementedTradeInServiceServer) ListAssessments(context.Context, *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAssessments not implemented")
}
func (UnimplementedTradeInServiceServer) ListAuditTrail(context.Context, *ListAuditTrailRequest) (*AuditTrailResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListAuditTrail not implemented")
}
func (UnimplementedTradeInServiceServer) BlockIdentity(context.Context, *BlockIdentityRequest) (*BlockedIdentityResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BlockIdentity not implemented")
}
func (UnimplementedTradeInServiceServer) ListQuestions(context.Context, *ListQuestionsRequest) (*ListQuestionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListQuestions not implemented")
}
func (UnimplementedTradeInServiceServer) mustEmbedUnimplementedTradeInServiceServer() {}

// RegisterTradeInServiceServer registers the TradeInServiceServer with the gRPC server.
func RegisterTradeInServiceServer(s grpclib.ServiceRegistrar, srv TradeInServiceServer) {
	s.RegisterService(&_TradeInService_serviceDesc, srv)
}

var _TradeInService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TradeInServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ValidateIdentity", Handler: unaryHandler("ValidateIdentity", TradeInServiceServer.ValidateIdentity)},
		{MethodName: "CalculateOffer", Handler: unaryHandler("CalculateOffer", TradeInServiceServer.CalculateOffer)},
		{MethodName: "SubmitAssessment", Handler: unaryHandler("SubmitAssessment", TradeInServiceServer.SubmitAssessment)},
		{MethodName: "ReviewAssessment", Handler: unaryHandler("ReviewAssessment", TradeInServiceServer.ReviewAssessment)},
		{MethodName: "CompletePayout", Handler: unaryHandler("CompletePayout", TradeInServiceServer.CompletePayout)},
		{MethodName: "CancelAssessment", Handler: unaryHandler("CancelAssessment", TradeInServiceServer.CancelAssessment)},
		{MethodName: "GetAssessment", Handler: unaryHandler("GetAssessment", TradeInServiceServer.GetAssessment)},
		{MethodName: "ListAssessments", Handler: unaryHandler("ListAssessments", TradeInServiceServer.ListAssessments)},
		{MethodName: "ListAuditTrail", Handler: unaryHandler("ListAuditTrail", TradeInServiceServer.ListAuditTrail)},
		{MethodName: "BlockIdentity", Handler: unaryHandler("BlockIdentity", TradeInServiceServer.BlockIdentity)},
		{MethodName: "ListQuestions", Handler: unaryHandler("ListQuestions", TradeInServiceServer.ListQuestions)},
	},
	Streams: []grpclib.StreamDesc{},
}

// FullMethod returns the "/service/method" name interceptors see.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// methodHandler matches grpc.MethodDesc.Handler.
type methodHandler = func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error)

// unaryHandler decodes Req, runs the server interceptor chain and dispatches
// to call. Generated code spells this out once per method.
func unaryHandler[Req, Resp any](
	method string,
	call func(TradeInServiceServer, context.Context, *Req) (*Resp, error),
) methodHandler {
	fullMethod := FullMethod(method)
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TradeInServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(TradeInServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
