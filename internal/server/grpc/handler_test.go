package grpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/logging"
	"github.com/dmitrijs2005/radicacion/internal/rpc"
	"github.com/dmitrijs2005/radicacion/internal/server/services"
)

type fakeSubmissions struct {
	userID   string
	meta     services.Metadata
	manifest []services.ManifestEntry
	radicado string

	initOut *services.InitiateOutput
	finOut  *services.FinalizeOutput
	err     error
}

func (f *fakeSubmissions) Initiate(_ context.Context, userID string, meta services.Metadata, manifest []services.ManifestEntry) (*services.InitiateOutput, error) {
	f.userID, f.meta, f.manifest = userID, meta, manifest
	return f.initOut, f.err
}

func (f *fakeSubmissions) Finalize(_ context.Context, userID, radicado string) (*services.FinalizeOutput, error) {
	f.userID, f.radicado = userID, radicado
	return f.finOut, f.err
}

func authed(userID string) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}

func TestInitiate_ConvertsBothWays(t *testing.T) {
	fake := &fakeSubmissions{initOut: &services.InitiateOutput{
		Radicado:     "RAD-1",
		SubmissionID: "sub-1",
		Tokens: []services.IssuedToken{
			{SignedURL: "http://u", Token: "t1", Path: "radicaciones/sub-1/factura/001-a.pdf", Category: common.CategoryFactura, OriginalName: "a.pdf"},
		},
	}}
	s := NewGRPCServer("", logging.Nop(), fake, "k")

	resp, err := s.Initiate(authed("u1"), &rpc.InitiateRequest{
		Metadata: rpc.SubmissionMetadata{IdentificationType: "CC", IdentificationNumber: "1", Service: "Consulta"},
		Files:    []rpc.ManifestEntry{{Category: "factura", Files: []rpc.ManifestFile{{Name: "a.pdf", Size: 3}}}},
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", fake.userID)
	assert.Equal(t, services.Metadata{IdentificationType: "CC", IdentificationNumber: "1", Service: "Consulta"}, fake.meta)
	assert.Equal(t, []services.ManifestEntry{{Category: common.CategoryFactura, Files: []services.ManifestFile{{Name: "a.pdf", Size: 3}}}}, fake.manifest)

	assert.Equal(t, &rpc.InitiateResponse{
		Success:   true,
		Radicado:  "RAD-1",
		SoporteID: "sub-1",
		UploadTokens: []rpc.UploadToken{
			{SignedURL: "http://u", Token: "t1", Path: "radicaciones/sub-1/factura/001-a.pdf", Category: "factura", OriginalName: "a.pdf"},
		},
	}, resp)
}

func TestFinalize_Converts(t *testing.T) {
	fake := &fakeSubmissions{finOut: &services.FinalizeOutput{
		Radicado: "RAD-1", Status: services.UploadNone, Missing: 2, Expected: 2, Deleted: true, Message: "eliminada",
	}}
	s := NewGRPCServer("", logging.Nop(), fake, "k")

	resp, err := s.Finalize(authed("u1"), &rpc.FinalizeRequest{Radicado: "RAD-1"})
	require.NoError(t, err)
	assert.Equal(t, "RAD-1", fake.radicado)
	assert.Equal(t, &rpc.FinalizeResponse{
		Success: false, Radicado: "RAD-1", UploadStatus: "none",
		ArchivosFaltantes: 2, TotalEsperados: 2, Eliminado: true, Mensaje: "eliminada",
	}, resp)

	_, err = s.Finalize(authed("u1"), &rpc.FinalizeRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestHandlers_MapServiceErrors(t *testing.T) {
	fake := &fakeSubmissions{err: fmt.Errorf("%w: service is required", common.ErrorIncorrectMetadata)}
	s := NewGRPCServer("", logging.Nop(), fake, "k")

	_, err := s.Initiate(authed("u1"), &rpc.InitiateRequest{})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "incorrect metadata: service is required", st.Message())

	fake.err = common.ErrorNotFound
	_, err = s.Finalize(authed("u1"), &rpc.FinalizeRequest{Radicado: "RAD-X"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrorUnauthorized, codes.Unauthenticated},
		{common.ErrorNotFound, codes.NotFound},
		{common.ErrorEmptyManifest, codes.InvalidArgument},
		{fmt.Errorf("%w: x", common.ErrorUnknownCategory), codes.InvalidArgument},
		{fmt.Errorf("%w: a.pdf", common.ErrorFileTooLarge), codes.InvalidArgument},
		{context.Canceled, codes.Canceled},
		{fmt.Errorf("%w: pq: timeout", common.ErrorInternal), codes.Internal},
		{errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}

	st, _ := status.FromError(toStatus(fmt.Errorf("%w: pq: secret detail", common.ErrorInternal)))
	assert.Equal(t, "internal error", st.Message())
}

func TestPing(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), nil, "k")
	resp, err := s.Ping(context.Background(), &rpc.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}
