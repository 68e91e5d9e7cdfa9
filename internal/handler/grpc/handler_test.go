package grpc

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
)

type mockGeneratorService struct {
	generateFn func(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error)
}

func (m *mockGeneratorService) Generate(ctx context.Context, opts models.PasswordOptions) (models.GeneratedPassword, error) {
	return m.generateFn(ctx, opts)
}

func (m *mockGeneratorService) ValidateOptions(_ context.Context, opts models.PasswordOptions) models.OptionsValidation {
	if opts.Length < 4 {
		return models.OptionsValidation{Error: "too short"}
	}
	return models.OptionsValidation{IsValid: true}
}

func (m *mockGeneratorService) Strength(_ context.Context, req models.StrengthRequest) models.PasswordStrength {
	return models.PasswordStrength{Score: len(req.Password) % 5, Label: "stub"}
}

// dial starts a gRPC server over bufconn and returns a client connection to it.
func dial(t *testing.T, svcs *service.Services) *grpc.ClientConn {
	t.Helper()

	h := NewHandler(svcs, logger.Nop())
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(h.ServerOptions()...)
	h.Register(srv)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestGenerator_Generate(t *testing.T) {
	opts := models.PasswordOptions{Length: 20, IncludeLowercase: true, IncludeSymbols: true}

	conn := dial(t, &service.Services{GeneratorService: &mockGeneratorService{
		generateFn: func(_ context.Context, got models.PasswordOptions) (models.GeneratedPassword, error) {
			assert.Equal(t, opts, got)
			return models.GeneratedPassword{Password: "p@ssw0rd-generated!!", Entropy: 120.5}, nil
		},
	}})

	var header metadata.MD
	var out models.GeneratedPassword
	err := conn.Invoke(context.Background(), GenerateMethod, &opts, &out, grpc.Header(&header))

	require.NoError(t, err)
	assert.Equal(t, "p@ssw0rd-generated!!", out.Password)
	assert.InDelta(t, 120.5, out.Entropy, 0.001)
	assert.NotEmpty(t, header.Get(traceIDKey))
}

func TestGenerator_Generate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode codes.Code
		wantMsg  string
	}{
		{
			name:     "invalid options",
			err:      fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, generator.ErrInvalidOptions),
			wantCode: codes.InvalidArgument,
			wantMsg:  app.MsgInvalidPasswordOptions,
		},
		{
			name:     "invalid data",
			err:      service.ErrInvalidDataProvided,
			wantCode: codes.InvalidArgument,
			wantMsg:  app.MsgInvalidDataProvided,
		},
		{
			name:     "internal",
			err:      fmt.Errorf("entropy source: %w", assert.AnError),
			wantCode: codes.Internal,
			wantMsg:  app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dial(t, &service.Services{GeneratorService: &mockGeneratorService{
				generateFn: func(_ context.Context, _ models.PasswordOptions) (models.GeneratedPassword, error) {
					return models.GeneratedPassword{}, tt.err
				},
			}})

			var out models.GeneratedPassword
			err := conn.Invoke(context.Background(), GenerateMethod, &models.PasswordOptions{}, &out)

			require.Error(t, err)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}

func TestGenerator_Validate(t *testing.T) {
	conn := dial(t, &service.Services{GeneratorService: &mockGeneratorService{}})

	var out models.OptionsValidation
	err := conn.Invoke(context.Background(), ValidateMethod, &models.PasswordOptions{Length: 2}, &out)

	require.NoError(t, err)
	assert.False(t, out.IsValid)
	assert.Equal(t, "too short", out.Error)
}

func TestGenerator_Strength(t *testing.T) {
	conn := dial(t, &service.Services{GeneratorService: &mockGeneratorService{}})

	var out models.PasswordStrength
	err := conn.Invoke(context.Background(), StrengthMethod, &models.StrengthRequest{Password: "abc"}, &out)

	require.NoError(t, err)
	assert.Equal(t, 3, out.Score)
}

func TestGenerator_TraceIDEchoed(t *testing.T) {
	conn := dial(t, &service.Services{GeneratorService: &mockGeneratorService{}})

	ctx := metadata.AppendToOutgoingContext(context.Background(), traceIDKey, "trace-123")
	var header metadata.MD
	var out models.PasswordStrength
	err := conn.Invoke(ctx, StrengthMethod, &models.StrengthRequest{Password: "x"}, &out, grpc.Header(&header))

	require.NoError(t, err)
	assert.Equal(t, []string{"trace-123"}, header.Get(traceIDKey))
}

func TestGenerator_UnknownMethod(t *testing.T) {
	conn := dial(t, &service.Services{GeneratorService: &mockGeneratorService{}})

	var out models.PasswordStrength
	err := conn.Invoke(context.Background(), "/"+GeneratorServiceName+"/Nope", &models.StrengthRequest{}, &out)

	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
