package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/MKhiriev/secure-vault/models"
)

// GeneratorServiceName is the fully qualified gRPC service name.
const GeneratorServiceName = "securevault.Generator"

// Full method names, usable with grpc.ClientConn.Invoke.
const (
	GenerateMethod = "/" + GeneratorServiceName + "/Generate"
	ValidateMethod = "/" + GeneratorServiceName + "/Validate"
	StrengthMethod = "/" + GeneratorServiceName + "/Strength"
)

// GeneratorServer is the server side of securevault.Generator.
type GeneratorServer interface {
	Generate(ctx context.Context, opts *models.PasswordOptions) (*models.GeneratedPassword, error)
	Validate(ctx context.Context, opts *models.PasswordOptions) (*models.OptionsValidation, error)
	Strength(ctx context.Context, req *models.StrengthRequest) (*models.PasswordStrength, error)
}

// GeneratorServiceDesc describes securevault.Generator for grpc.Server.
var GeneratorServiceDesc = grpc.ServiceDesc{
	ServiceName: GeneratorServiceName,
	HandlerType: (*GeneratorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Generate", Handler: generateHandler},
		{MethodName: "Validate", Handler: validateHandler},
		{MethodName: "Strength", Handler: strengthHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "securevault/generator.json",
}

func (h *Handler) Generate(ctx context.Context, opts *models.PasswordOptions) (*models.GeneratedPassword, error) {
	generated, err := h.services.GeneratorService.Generate(ctx, *opts)
	if err != nil {
		return nil, statusFromError(ctx, err, "*Handler.Generate")
	}
	return &generated, nil
}

func (h *Handler) Validate(ctx context.Context, opts *models.PasswordOptions) (*models.OptionsValidation, error) {
	validation := h.services.GeneratorService.ValidateOptions(ctx, *opts)
	return &validation, nil
}

func (h *Handler) Strength(ctx context.Context, req *models.StrengthRequest) (*models.PasswordStrength, error) {
	strength := h.services.GeneratorService.Strength(ctx, *req)
	return &strength, nil
}

func generateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.PasswordOptions)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GeneratorServer).Generate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GeneratorServer).Generate(ctx, req.(*models.PasswordOptions))
	}
	return interceptor(ctx, in, info, handler)
}

func validateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.PasswordOptions)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GeneratorServer).Validate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GeneratorServer).Validate(ctx, req.(*models.PasswordOptions))
	}
	return interceptor(ctx, in, info, handler)
}

func strengthHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(models.StrengthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GeneratorServer).Strength(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: StrengthMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(GeneratorServer).Strength(ctx, req.(*models.StrengthRequest))
	}
	return interceptor(ctx, in, info, handler)
}
