package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// pdfText makes text safe for the standard PDF fonts, which only cover Latin-1.
// Typographic dashes become "-", other runes outside Latin-1 (emoji) are dropped.
func pdfText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '—' || r == '–':
			b.WriteByte('-')
		case r == '’' || r == '‘':
			b.WriteByte('\'')
		case r < 0x100:
			b.WriteByte(byte(r))
		}
	}
	return strings.TrimSpace(b.String())
}

// PDFProjectionReport renders one calculation as a printable report
type PDFProjectionReport struct {
	pdf    *fpdf.Fpdf
	result CalculationResult
}

// GenerateProjectionPDFReport builds the PDF for a calculation result
func GenerateProjectionPDFReport(result CalculationResult) ([]byte, error) {
	report := &PDFProjectionReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		result: result,
	}
	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)
	report.pdf.SetTitle("Simple Path Calculator - Investment Projection", false)

	report.addSummaryPage()
	report.addGrowthTable()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFProjectionReport) addSummaryPage() {
	res := r.result
	sum := res.Summary
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 24)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(10)
	r.pdf.CellFormat(contentWidth, 12, "Your Investment Projection", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(4)
	r.pdf.CellFormat(contentWidth, 8, pdfText(fmt.Sprintf("If you invested %s in a total stock market index fund for %d years",
		sum.Amount, res.Projection.Years)), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s  |  Report %s",
		res.CalculatedAt.Format("2 January 2006"), shortID(res.ID)), "", 1, "C", false, 0, "")
	r.pdf.Ln(8)

	r.drawSectionHeader("Scenarios")
	widths := []float64{60, 60, 60}
	r.drawTableHeader([]string{"", "Conservative", "Optimistic"}, widths)
	r.drawTableRow([]string{"Annual rate", FormatRate(res.ConservativeRate), FormatRate(res.OptimisticRate)}, widths, false)
	r.drawTableRow([]string{"Value after " + fmt.Sprint(res.Projection.Years) + " years", sum.Conservative, sum.Optimistic}, widths, true)
	r.drawTableRow([]string{"Gain", "+" + sum.ConservativeGain, "+" + sum.OptimisticGain}, widths, false)
	r.drawTableRow([]string{"Multiplier", sum.ConservativeMultiplier, sum.OptimisticMultiplier}, widths, false)
	r.drawTableRow([]string{"Implied annual growth", sum.ConservativeAnnual, sum.OptimisticAnnual}, widths, false)
	r.pdf.Ln(8)

	r.drawSectionHeader("Augie's Suggestion")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(contentWidth, 6, pdfText(res.Suggestion.Message), "", "L", false)
	if !res.Suggestion.TooSmall() {
		item := res.Suggestion.Item
		r.pdf.Ln(2)
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.CellFormat(contentWidth, 6, pdfText(item.Name+" by "+item.Brand), "", 1, "L", false, 0, "")
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("%s - you could buy %d of these", res.Suggestion.PriceText, res.Suggestion.Quantity), "", 1, "L", false, 0, "")
		r.pdf.SetTextColor(37, 99, 235)
		r.pdf.CellFormat(contentWidth, 6, res.Suggestion.ShopURL, "", 1, "L", false, 0, res.Suggestion.ShopURL)
	}
	r.pdf.Ln(8)

	r.drawSectionHeader("Wisdom from JL Collins")
	r.pdf.SetFont("Arial", "I", 12)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.MultiCell(contentWidth, 7, pdfText(`"`+res.Quote+`"`), "", "L", false)
	r.pdf.Ln(8)

	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 5, pdfText(fmt.Sprintf("Market data source: %s (Last updated: %s). %s",
		res.MarketData.Source, res.MarketData.LastUpdated.Format("2006-01-02"), disclaimer)), "", "L", false)
}

func (r *PDFProjectionReport) addGrowthTable() {
	if len(r.result.Schedule) == 0 {
		return
	}
	r.pdf.AddPage()
	r.drawSectionHeader("Year-by-Year Growth")
	widths := []float64{30, 75, 75}
	r.drawTableHeader([]string{"Year", "Conservative", "Optimistic"}, widths)
	for _, yv := range r.result.Schedule {
		r.drawTableRow([]string{fmt.Sprint(yv.Year), FormatCurrency(yv.Conservative), FormatCurrency(yv.Optimistic)},
			widths, yv.Year == len(r.result.Schedule))
	}
}

func (r *PDFProjectionReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFProjectionReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFProjectionReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
