package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
)

type questionsOnlyServer struct {
	UnimplementedTradeInServiceServer
	calls int
}

func (s *questionsOnlyServer) ListQuestions(context.Context, *ListQuestionsRequest) (*ListQuestionsResponse, error) {
	s.calls++
	return &ListQuestionsResponse{Questions: []dto.QuestionResponse{{ID: "screen"}}}, nil
}

func findMethod(t *testing.T, name string) grpclib.MethodDesc {
	t.Helper()
	for _, m := range _TradeInService_serviceDesc.Methods {
		if m.MethodName == name {
			return m
		}
	}
	t.Fatalf("method %s not registered", name)
	return grpclib.MethodDesc{}
}

func jsonDecoder(body string) func(interface{}) error {
	return func(v interface{}) error { return json.Unmarshal([]byte(body), v) }
}

func TestServiceDesc_Methods(t *testing.T) {
	names := make([]string, 0, len(_TradeInService_serviceDesc.Methods))
	for _, m := range _TradeInService_serviceDesc.Methods {
		require.NotNil(t, m.Handler, m.MethodName)
		names = append(names, m.MethodName)
	}
	assert.ElementsMatch(t, []string{
		"ValidateIdentity", "CalculateOffer", "SubmitAssessment", "ReviewAssessment",
		"CompletePayout", "CancelAssessment", "GetAssessment", "ListAssessments",
		"ListAuditTrail", "BlockIdentity", "ListQuestions",
	}, names)
	assert.Equal(t, "/tradein.v1.TradeInService/ListQuestions", FullMethod("ListQuestions"))
}

func TestUnaryHandler(t *testing.T) {
	method := findMethod(t, "ListQuestions")

	t.Run("without interceptor", func(t *testing.T) {
		srv := &questionsOnlyServer{}
		out, err := method.Handler(srv, context.Background(), jsonDecoder(`{}`), nil)
		require.NoError(t, err)
		assert.Len(t, out.(*ListQuestionsResponse).Questions, 1)
		assert.Equal(t, 1, srv.calls)
	})

	t.Run("interceptor sees full method and wraps the call", func(t *testing.T) {
		srv := &questionsOnlyServer{}
		var seen string
		interceptor := func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
			seen = info.FullMethod
			assert.Same(t, srv, info.Server)
			return handler(ctx, req)
		}
		_, err := method.Handler(srv, context.Background(), jsonDecoder(`{}`), interceptor)
		require.NoError(t, err)
		assert.Equal(t, FullMethod("ListQuestions"), seen)
		assert.Equal(t, 1, srv.calls)
	})

	t.Run("interceptor can reject", func(t *testing.T) {
		srv := &questionsOnlyServer{}
		deny := func(context.Context, interface{}, *grpclib.UnaryServerInfo, grpclib.UnaryHandler) (interface{}, error) {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}
		_, err := method.Handler(srv, context.Background(), jsonDecoder(`{}`), deny)
		requireGRPCCode(t, err, codes.Unauthenticated)
		assert.Zero(t, srv.calls)
	})

	t.Run("decode error", func(t *testing.T) {
		srv := &questionsOnlyServer{}
		decodeErr := errors.New("bad frame")
		_, err := method.Handler(srv, context.Background(), func(interface{}) error { return decodeErr }, nil)
		assert.ErrorIs(t, err, decodeErr)
		assert.Zero(t, srv.calls)
	})
}
