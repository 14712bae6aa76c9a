package tokenprovider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/flexauth/go-flexauth/internal/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestProvider_UnaryClientInterceptor(t *testing.T) {
	server := testutil.NewTokenServer(t, nil)
	provider := newEnabledProvider(t, server)

	interceptor := provider.UnaryClientInterceptor()
	if interceptor == nil {
		t.Fatal("interceptor should not be nil")
	}

	called := false
	mockInvoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		called = true

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			t.Error("metadata not found in context")
			return nil
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			t.Error("authorization header not found")
			return nil
		}

		if !strings.HasPrefix(authHeaders[0], "Bearer ") {
			t.Errorf("expected Bearer token, got: %s", authHeaders[0])
		}

		return nil
	}

	err := interceptor(context.Background(), "/test.Service/Method", nil, nil, nil, mockInvoker)
	if err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("invoker was not called")
	}
}

func TestProvider_StreamClientInterceptor(t *testing.T) {
	server := testutil.NewTokenServer(t, nil)
	provider := newEnabledProvider(t, server)

	interceptor := provider.StreamClientInterceptor()
	if interceptor == nil {
		t.Fatal("interceptor should not be nil")
	}

	called := false
	mockStreamer := func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		called = true

		md, ok := metadata.FromOutgoingContext(ctx)
		if !ok {
			t.Error("metadata not found in context")
			return nil, nil
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			t.Error("authorization header not found")
			return nil, nil
		}

		if !strings.HasPrefix(authHeaders[0], "Bearer ") {
			t.Errorf("expected Bearer token, got: %s", authHeaders[0])
		}

		return nil, nil
	}

	_, err := interceptor(context.Background(), &grpc.StreamDesc{}, nil, "/test.Service/Method", mockStreamer)
	if err != nil {
		t.Errorf("interceptor failed: %v", err)
	}

	if !called {
		t.Error("streamer was not called")
	}
}

func TestProvider_Interceptor_TokenFetchError(t *testing.T) {
	server := testutil.NewTokenServer(t, func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("token fetch failed")
	})
	provider := newEnabledProvider(t, server)

	unaryInterceptor := provider.UnaryClientInterceptor()
	err := unaryInterceptor(context.Background(), "/test", nil, nil, nil, func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		t.Error("invoker should not be called when token fetch fails")
		return nil
	})
	if err == nil {
		t.Error("expected error from unary interceptor, got nil")
	}

	streamInterceptor := provider.StreamClientInterceptor()
	_, err = streamInterceptor(context.Background(), &grpc.StreamDesc{}, nil, "/test", func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		t.Error("streamer should not be called when token fetch fails")
		return nil, nil
	})
	if err == nil {
		t.Error("expected error from stream interceptor, got nil")
	}
}
