package cli

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrijs2005/radicacion/internal/client/client"
	"github.com/dmitrijs2005/radicacion/internal/client/config"
	"github.com/dmitrijs2005/radicacion/internal/client/uploader"
	"github.com/dmitrijs2005/radicacion/internal/logging"
)

// App carries what the commands share. The constructors are fields so tests
// can swap the network out.
type App struct {
	config *config.Config
	logger logging.Logger
	out    io.Writer

	newClient   func(*config.Config) (client.Client, error)
	newTransfer func(*config.Config) uploader.Transfer
}

func NewApp(cfg *config.Config, out io.Writer) *App {
	return &App{
		config: cfg,
		out:    out,
		newClient: func(c *config.Config) (client.Client, error) {
			return client.NewRadicacionClient(c.ServerEndpointAddr, c.AccessToken, c.RequestTimeout)
		},
		newTransfer: func(c *config.Config) uploader.Transfer {
			return uploader.NewHTTPTransfer(&http.Client{Timeout: c.UploadTimeout})
		},
	}
}

// initLogger builds the stderr logger once flags are parsed.
func (a *App) initLogger() {
	if a.logger != nil {
		return
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.config.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	a.logger = logging.NewConsoleLogger(os.Stderr, level)
}
