package tokenprovider

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// UnaryClientInterceptor returns a gRPC unary client interceptor that adds
// the provider's token as "authorization: Bearer <token>" to the outgoing
// request metadata. If no usable token can be obtained, the RPC is aborted
// with the acquisition error. The interceptor respects the RPC context's
// cancellation and deadline.
func (p *Provider) UnaryClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		ctx, err := p.bearerContext(ctx)
		if err != nil {
			return err
		}

		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// StreamClientInterceptor returns a gRPC stream client interceptor that adds
// the provider's token as "authorization: Bearer <token>" to the outgoing
// request metadata. If no usable token can be obtained, stream creation is
// aborted with the acquisition error.
func (p *Provider) StreamClientInterceptor() grpc.StreamClientInterceptor {
	return func(
		ctx context.Context,
		desc *grpc.StreamDesc,
		cc *grpc.ClientConn,
		method string,
		streamer grpc.Streamer,
		opts ...grpc.CallOption,
	) (grpc.ClientStream, error) {
		ctx, err := p.bearerContext(ctx)
		if err != nil {
			return nil, err
		}

		return streamer(ctx, desc, cc, method, opts...)
	}
}

func (p *Provider) bearerContext(ctx context.Context) (context.Context, error) {
	token, err := p.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("tokenprovider: failed to get token: %w", err)
	}

	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token.AccessToken), nil
}
