package client

import (
	"context"

	"github.com/dmitrijs2005/radicacion/internal/client/models"
)

// Client is the submission backend as seen by the CLI.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Initiate(ctx context.Context, req models.InitiateRequest) (*models.InitiateResult, error)
	Finalize(ctx context.Context, radicado string) (*models.FinalizeResult, error)
}
