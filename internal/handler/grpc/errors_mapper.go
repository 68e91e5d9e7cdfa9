package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/secure-vault/internal/app"
	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
)

// statusFromError logs err and converts it to a gRPC status error carrying
// the same app.Msg* text the HTTP layer writes.
func statusFromError(ctx context.Context, err error, op string) error {
	var st *status.Status
	switch {
	case errors.Is(err, generator.ErrInvalidOptions):
		st = status.New(codes.InvalidArgument, app.MsgInvalidPasswordOptions)
	case errors.Is(err, service.ErrInvalidDataProvided):
		st = status.New(codes.InvalidArgument, app.MsgInvalidDataProvided)
	case errors.Is(err, context.Canceled):
		st = status.New(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		st = status.New(codes.DeadlineExceeded, err.Error())
	default:
		st = status.New(codes.Internal, app.MsgInternalServerError)
	}

	log := logger.FromContext(ctx)
	if st.Code() == codes.Internal {
		log.Err(err).Str("func", op).Msg("call failed")
	} else {
		log.Info().Err(err).Str("func", op).Str("code", st.Code().String()).Msg("call rejected")
	}

	return st.Err()
}
