package client

import (
	"github.com/dmitrijs2005/radicacion/internal/client/models"
	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/rpc"
)

func toInitiateRequest(req models.InitiateRequest) *rpc.InitiateRequest {
	m := req.Metadata
	out := &rpc.InitiateRequest{
		Metadata: rpc.SubmissionMetadata{
			IdentificationType:   m.IdentificationType,
			IdentificationNumber: m.IdentificationNumber,
			PatientName:          m.PatientName,
			Service:              m.Service,
			ServiceCategory:      m.ServiceCategory,
			Observations:         m.Observations,
		},
		Files: make([]rpc.ManifestEntry, 0, len(req.Manifest)),
	}
	for _, e := range req.Manifest {
		entry := rpc.ManifestEntry{Category: string(e.Category)}
		for _, f := range e.Files {
			entry.Files = append(entry.Files, rpc.ManifestFile{Name: f.Name, Size: f.Size})
		}
		out.Files = append(out.Files, entry)
	}
	return out
}

func fromInitiateResponse(resp *rpc.InitiateResponse) *models.InitiateResult {
	out := &models.InitiateResult{
		Radicado:     resp.Radicado,
		SubmissionID: resp.SoporteID,
		Tokens:       make([]models.UploadToken, 0, len(resp.UploadTokens)),
	}
	for _, t := range resp.UploadTokens {
		out.Tokens = append(out.Tokens, models.UploadToken{
			SignedURL:    t.SignedURL,
			Token:        t.Token,
			Path:         t.Path,
			Category:     common.Category(t.Category),
			OriginalName: t.OriginalName,
		})
	}
	return out
}

func fromFinalizeResponse(resp *rpc.FinalizeResponse) *models.FinalizeResult {
	return &models.FinalizeResult{
		Radicado:     resp.Radicado,
		UploadStatus: models.UploadStatus(resp.UploadStatus),
		Uploaded:     resp.ArchivosExitosos,
		Missing:      resp.ArchivosFaltantes,
		Expected:     resp.TotalEsperados,
		Deleted:      resp.Eliminado,
		Message:      resp.Mensaje,
	}
}
