package rpc

import (
	"context"
	"net"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type echoServer struct {
	UnimplementedRadicacionServiceServer
	lastInitiate *InitiateRequest
}

func (s *echoServer) Initiate(_ context.Context, in *InitiateRequest) (*InitiateResponse, error) {
	s.lastInitiate = in
	return &InitiateResponse{
		Success:   true,
		Radicado:  "RAD-1",
		SoporteID: "sub-1",
		UploadTokens: []UploadToken{
			{SignedURL: "http://s/1", Token: "t1", Path: "p1", Category: in.Files[0].Category, OriginalName: in.Files[0].Files[0].Name},
		},
	}, nil
}

func (s *echoServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return &PingResponse{Status: "OK"}, nil
}

func dialBufconn(t *testing.T, srv RadicacionServiceServer, opts ...grpc.ServerOption) RadicacionServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(opts...)
	RegisterRadicacionServiceServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewRadicacionServiceClient(conn)
}

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, "json", c.Name())
}

func TestWireFieldNames(t *testing.T) {
	b, err := json.Marshal(&FinalizeResponse{Success: true, Radicado: "R", UploadStatus: "partial", ArchivosExitosos: 2, ArchivosFaltantes: 1, TotalEsperados: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"radicado":"R","uploadStatus":"partial","archivosExitosos":2,"archivosFaltantes":1,"totalEsperados":3,"eliminado":false}`, string(b))

	b, err = json.Marshal(&UploadToken{SignedURL: "u", Token: "t", Path: "p", Category: "factura", OriginalName: "a.pdf"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"signedUrl":"u","token":"t","path":"p","category":"factura","originalName":"a.pdf"}`, string(b))
}

func TestRoundTripOverGRPC(t *testing.T) {
	srv := &echoServer{}
	client := dialBufconn(t, srv)

	resp, err := client.Initiate(context.Background(), &InitiateRequest{
		Metadata: SubmissionMetadata{IdentificationType: "CC", IdentificationNumber: "123", Service: "Consulta"},
		Files:    []ManifestEntry{{Category: "factura", Files: []ManifestFile{{Name: "a.pdf", Size: 10}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "RAD-1", resp.Radicado)
	assert.Equal(t, "sub-1", resp.SoporteID)
	require.Len(t, resp.UploadTokens, 1)
	assert.Equal(t, "a.pdf", resp.UploadTokens[0].OriginalName)
	assert.Equal(t, "123", srv.lastInitiate.Metadata.IdentificationNumber)

	ping, err := client.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)
}

func TestUnimplemented(t *testing.T) {
	client := dialBufconn(t, &echoServer{})
	_, err := client.Finalize(context.Background(), &FinalizeRequest{Radicado: "R"})
	require.Error(t, err)
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestInterceptorSeesFullMethod(t *testing.T) {
	var seen []string
	icpt := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		seen = append(seen, info.FullMethod)
		return handler(ctx, req)
	}
	client := dialBufconn(t, &echoServer{}, grpc.UnaryInterceptor(icpt))

	_, err := client.Ping(context.Background(), &PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{PingFullMethod}, seen)
}
