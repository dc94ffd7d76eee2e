package web

import (
	_ "embed"
	"io"

	"github.com/flosch/pongo2/v6"

	"job-estimator/internal/domain"
)

//go:embed templates/dashboard.html
var dashboardHTML string

var dashboardTemplate = pongo2.Must(pongo2.FromString(dashboardHTML))

// renderDashboard writes the dashboard page. pongo2 autoescapes every value.
func renderDashboard(w io.Writer, s domain.State) error {
	return dashboardTemplate.ExecuteWriter(pongo2.Context{
		"prompt":      s.Prompt,
		"response":    s.Response,
		"voice_label": s.VoiceLabel(),
		"estimating":  s.Estimating,
		"capturing":   s.Capture.Active(),
		"busy":        s.Estimating || s.Capture.Active(),
	}, w)
}
