package rpc

// SubmissionMetadata is the form that accompanies the files.
type SubmissionMetadata struct {
	IdentificationType   string `json:"tipoIdentificacion"`
	IdentificationNumber string `json:"numeroIdentificacion"`
	PatientName          string `json:"nombrePaciente,omitempty"`
	Service              string `json:"servicio"`
	ServiceCategory      string `json:"categoriaServicio,omitempty"`
	Observations         string `json:"observaciones,omitempty"`
}

type ManifestFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type ManifestEntry struct {
	Category string         `json:"category"`
	Files    []ManifestFile `json:"files"`
}

type InitiateRequest struct {
	Metadata SubmissionMetadata `json:"metadata"`
	Files    []ManifestEntry    `json:"files"`
}

type UploadToken struct {
	SignedURL    string `json:"signedUrl"`
	Token        string `json:"token"`
	Path         string `json:"path"`
	Category     string `json:"category"`
	OriginalName string `json:"originalName"`
}

type InitiateResponse struct {
	Success      bool          `json:"success"`
	Radicado     string        `json:"radicado"`
	SoporteID    string        `json:"soporteId"`
	UploadTokens []UploadToken `json:"uploadTokens"`
}

type FinalizeRequest struct {
	Radicado string `json:"radicado"`
}

type FinalizeResponse struct {
	Success           bool   `json:"success"`
	Radicado          string `json:"radicado"`
	UploadStatus      string `json:"uploadStatus"`
	ArchivosExitosos  int    `json:"archivosExitosos"`
	ArchivosFaltantes int    `json:"archivosFaltantes"`
	TotalEsperados    int    `json:"totalEsperados"`
	Eliminado         bool   `json:"eliminado"`
	Mensaje           string `json:"mensaje,omitempty"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
