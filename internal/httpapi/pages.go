package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"aqicast/internal/forecast"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const dateLayout = "2006-01-02"

type indexPage struct {
	Error      string
	City       string
	Days       string
	Cities     []string
	MaxHorizon int
}

// predictionRow is one field mapping of the result table.
type predictionRow struct {
	Date         string
	PredictedAQI float64
}

type resultPage struct {
	City        string
	Start       string
	Predictions []predictionRow
	PlotURL     string
}

func newResultPage(res forecast.Result, plotPath string) resultPage {
	rows := make([]predictionRow, len(res.Points))
	for i, p := range res.Points {
		rows[i] = predictionRow{Date: p.Date.Format(dateLayout), PredictedAQI: p.Value}
	}
	return resultPage{
		City:        res.City,
		Start:       res.Start.Format(dateLayout),
		Predictions: rows,
		PlotURL:     "/static/" + plotPath,
	}
}

// renderPage executes name into a buffer first so a template failure still
// yields a clean 500 instead of a half-written page.
func renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		zlog.Error().Err(err).Str("template", name).Msg("render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
