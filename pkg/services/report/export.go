package report

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/coreframe-ai/doom-diag/pkg/models/domain"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Exporter renders reports to a downloadable document. It never fails: any
// render problem falls back to a minimal text-only document.
type Exporter struct{}

func NewExporter() *Exporter {
	return &Exporter{}
}

func (e *Exporter) Export(ctx context.Context, report domain.DoomReport) (data []byte, contentType string) {
	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Warn().Interface("panic", r).Msg("pdf rendering panicked, falling back to text export")
			data, contentType = renderText(report), ContentTypeText
		}
	}()

	pdfData, err := renderPDF(report)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("pdf rendering failed, falling back to text export")
		return renderText(report), ContentTypeText
	}
	return pdfData, ContentTypePDF
}

func renderPDF(report domain.DoomReport) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Doom-Diag Report")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Source: %s (%s)", report.FileName, report.FileType))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Created: %s", report.CreatedAt.Format("2006-01-02 15:04 MST")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Doom Clock: %s days remaining", formatDays(report.DoomClock.DaysRemaining)))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf(
		"Optimistic %s / Realistic %s / Pessimistic %s days, confidence %.0f%%",
		formatDays(report.DoomClock.Projections.Optimistic),
		formatDays(report.DoomClock.Projections.Realistic),
		formatDays(report.DoomClock.Projections.Pessimistic),
		report.DoomClock.ConfidenceScore*100,
	))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Financial Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range summaryLines(report.FinancialSummary) {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Brutal Headlines")
	pdf.Ln(8)
	for i, h := range report.BrutalHeadlines {
		marker := "[ ]"
		if h.Completed {
			marker = "[x]"
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s %s", i+1, marker, h.Headline), "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, fmt.Sprintf("Action: %s", h.Action), "", "L", false)
		pdf.MultiCell(0, 5, fmt.Sprintf("Impact: %s, confidence %.0f%%", formatImpact(h.Impact), h.Confidence*100), "", "L", false)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func renderText(report domain.DoomReport) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Doom-Diag Report %s\n", report.ID)
	fmt.Fprintf(&b, "Source: %s (%s)\n", report.FileName, report.FileType)
	fmt.Fprintf(&b, "Doom Clock: %s days remaining\n", formatDays(report.DoomClock.DaysRemaining))
	for _, line := range summaryLines(report.FinancialSummary) {
		fmt.Fprintf(&b, "%s\n", line)
	}
	for i, h := range report.BrutalHeadlines {
		fmt.Fprintf(&b, "%d. %s\n   Action: %s\n", i+1, h.Headline, h.Action)
	}
	return []byte(b.String())
}

func summaryLines(s domain.FinancialSummary) []string {
	return []string{
		fmt.Sprintf("Total revenue: %.2f", s.TotalRevenue),
		fmt.Sprintf("Total costs: %.2f", s.TotalCosts),
		fmt.Sprintf("Burn rate: %.2f / month", s.BurnRate),
		fmt.Sprintf("Runway: %s days", formatDays(s.Runway)),
	}
}

func formatDays(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if math.IsInf(v, 0) {
		return "unbounded"
	}
	return fmt.Sprintf("%.0f", v)
}

func formatImpact(i domain.Impact) string {
	if i.Kind == domain.ImpactPercentage {
		return i.Percentage
	}
	if math.IsNaN(i.Amount) || math.IsInf(i.Amount, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", i.Amount)
}
