package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/radicacion/internal/client/uploader"
)

var statusLabels = map[uploader.Status]string{
	uploader.StatusPending:   "pendiente",
	uploader.StatusUploading: "subiendo",
	uploader.StatusDone:      "cargado",
	uploader.StatusError:     "error",
}

// progressPrinter prints one line per status change. Snapshots arrive one at
// a time, so it needs no locking of its own.
type progressPrinter struct {
	w    io.Writer
	last []uploader.Status
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	return &progressPrinter{w: w}
}

func (p *progressPrinter) update(statuses []uploader.FileStatus) {
	if p.last == nil {
		p.last = make([]uploader.Status, len(statuses))
		for i := range p.last {
			p.last[i] = uploader.StatusPending
		}
	}
	for i, s := range statuses {
		if s.Status == p.last[i] {
			continue
		}
		p.last[i] = s.Status
		line := fmt.Sprintf("[%d/%d] %s/%s: %s", i+1, len(statuses), s.Category, s.Name, statusLabels[s.Status])
		if s.Status == uploader.StatusError && s.Error != "" {
			line += " (" + s.Error + ")"
		}
		fmt.Fprintln(p.w, line)
	}
}

func printResult(w io.Writer, res *uploader.Result) {
	fmt.Fprintln(w, res.Message)
	if res.Radicado != "" {
		fmt.Fprintf(w, "  radicado: %s\n", res.Radicado)
	}
	if res.Expected > 0 {
		fmt.Fprintf(w, "  archivos: %d cargados, %d faltantes, %d esperados\n", res.Uploaded, res.Missing, res.Expected)
	}
	for _, s := range res.Files {
		if s.Status == uploader.StatusError {
			fmt.Fprintf(w, "  fallido %s/%s: %s\n", s.Category, s.Name, s.Error)
		}
	}
	for _, r := range res.Rejected {
		fmt.Fprintf(w, "  rechazado %s/%s: %v\n", r.Category, r.Name, r.Err)
	}
}
