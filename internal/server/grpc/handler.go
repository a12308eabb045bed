package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/rpc"
	"github.com/dmitrijs2005/radicacion/internal/server/services"
)

func (s *GRPCServer) Initiate(ctx context.Context, req *rpc.InitiateRequest) (*rpc.InitiateResponse, error) {
	s.logger.Info(ctx, "Initiate request", "categories", len(req.Files))

	out, err := s.submissions.Initiate(ctx, userIDFromContext(ctx), toMetadata(req.Metadata), toManifest(req.Files))
	if err != nil {
		s.logger.Warn(ctx, "Initiate failed", "error", err)
		return nil, toStatus(err)
	}

	return fromInitiateOutput(out), nil
}

func (s *GRPCServer) Finalize(ctx context.Context, req *rpc.FinalizeRequest) (*rpc.FinalizeResponse, error) {
	if req.Radicado == "" {
		return nil, status.Error(codes.InvalidArgument, "radicado is required")
	}

	out, err := s.submissions.Finalize(ctx, userIDFromContext(ctx), req.Radicado)
	if err != nil {
		s.logger.Warn(ctx, "Finalize failed", "radicado", req.Radicado, "error", err)
		return nil, toStatus(err)
	}

	return fromFinalizeOutput(out), nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

// toStatus maps service errors onto gRPC codes. Validation messages are
// passed through; internal details are not.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "radicado not found")
	case errors.Is(err, common.ErrorIncorrectMetadata),
		errors.Is(err, common.ErrorEmptyManifest),
		errors.Is(err, common.ErrorUnknownCategory),
		errors.Is(err, common.ErrorFileTooLarge):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func toMetadata(m rpc.SubmissionMetadata) services.Metadata {
	return services.Metadata{
		IdentificationType:   m.IdentificationType,
		IdentificationNumber: m.IdentificationNumber,
		PatientName:          m.PatientName,
		Service:              m.Service,
		ServiceCategory:      m.ServiceCategory,
		Observations:         m.Observations,
	}
}

func toManifest(entries []rpc.ManifestEntry) []services.ManifestEntry {
	out := make([]services.ManifestEntry, len(entries))
	for i, e := range entries {
		files := make([]services.ManifestFile, len(e.Files))
		for j, f := range e.Files {
			files[j] = services.ManifestFile{Name: f.Name, Size: f.Size}
		}
		out[i] = services.ManifestEntry{Category: common.Category(e.Category), Files: files}
	}
	return out
}

func fromInitiateOutput(out *services.InitiateOutput) *rpc.InitiateResponse {
	tokens := make([]rpc.UploadToken, len(out.Tokens))
	for i, t := range out.Tokens {
		tokens[i] = rpc.UploadToken{
			SignedURL:    t.SignedURL,
			Token:        t.Token,
			Path:         t.Path,
			Category:     string(t.Category),
			OriginalName: t.OriginalName,
		}
	}
	return &rpc.InitiateResponse{
		Success:      true,
		Radicado:     out.Radicado,
		SoporteID:    out.SubmissionID,
		UploadTokens: tokens,
	}
}

func fromFinalizeOutput(out *services.FinalizeOutput) *rpc.FinalizeResponse {
	return &rpc.FinalizeResponse{
		Success:           out.Success(),
		Radicado:          out.Radicado,
		UploadStatus:      string(out.Status),
		ArchivosExitosos:  out.Present,
		ArchivosFaltantes: out.Missing,
		TotalEsperados:    out.Expected,
		Eliminado:         out.Deleted,
		Mensaje:           out.Message,
	}
}
