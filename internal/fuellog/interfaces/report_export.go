package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	fuellog "fuelwatch-cloud/internal/fuellog/domain"
	payout "fuelwatch-cloud/internal/payout/domain"
)

// BuildReportPDF renders a summary and payout breakdown as a PDF.
func BuildReportPDF(report fuellog.SummaryReport, breakdown payout.Breakdown) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Fuel Delivery Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Window: %s to %s",
		report.Window.Start.Format(windowFormat), report.Window.End.Format(windowFormat)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Readings: %d", report.ReadingCount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Deliveries: %d", report.EventCount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Trips: %d", report.Trips.Total()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total Taken (L): %.0f", report.TotalVolumeTaken))
	pdf.Ln(8)

	// Deliveries table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 6, "Operator", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Logged", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Levels", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Taken (L)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, event := range report.Events {
		pdf.CellFormat(45, 6, event.To.Author, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, event.To.LoggedAt.Format("2006-01-02 15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.0f -> %.0f", event.From.StockAfter, event.To.StockBefore), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.0f", event.VolumeTaken), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.Cell(0, 6, fmt.Sprintf("Trip Revenue: %.2f", breakdown.TripRevenue))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Volume Revenue: %.2f", breakdown.VolumeRevenue))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Gross Total: %.2f", breakdown.GrossTotal))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Net Total: %.2f", breakdown.NetTotal))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(90, 6, "Stakeholder", "1", 0, "C", false, 0, "")
	pdf.CellFormat(90, 6, "Share", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, name := range sortedKeys(breakdown.Shares) {
		pdf.CellFormat(90, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(90, 6, fmt.Sprintf("%.2f", breakdown.Shares[name]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders a summary and payout breakdown as an XLSX
// workbook with summary, deliveries and payout sheets.
func BuildReportXLSX(report fuellog.SummaryReport, breakdown payout.Breakdown) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	deliveriesSheet := "deliveries"
	payoutSheet := "payout"
	f.SetSheetName("Sheet1", summarySheet)
	_, _ = f.NewSheet(deliveriesSheet)
	_, _ = f.NewSheet(payoutSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Fuel Delivery Report")
	_ = f.SetCellValue(summarySheet, "A3", "Window Start")
	_ = f.SetCellValue(summarySheet, "B3", report.Window.Start.Format(windowFormat))
	_ = f.SetCellValue(summarySheet, "A4", "Window End")
	_ = f.SetCellValue(summarySheet, "B4", report.Window.End.Format(windowFormat))
	_ = f.SetCellValue(summarySheet, "A5", "Readings")
	_ = f.SetCellValue(summarySheet, "B5", report.ReadingCount)
	_ = f.SetCellValue(summarySheet, "A6", "Deliveries")
	_ = f.SetCellValue(summarySheet, "B6", report.EventCount)
	_ = f.SetCellValue(summarySheet, "A7", "Trips")
	_ = f.SetCellValue(summarySheet, "B7", report.Trips.Total())
	_ = f.SetCellValue(summarySheet, "A8", "Total Taken (L)")
	_ = f.SetCellValue(summarySheet, "B8", report.TotalVolumeTaken)

	_ = f.SetCellValue(deliveriesSheet, "A1", "Operator")
	_ = f.SetCellValue(deliveriesSheet, "B1", "Logged")
	_ = f.SetCellValue(deliveriesSheet, "C1", "Level After Prev")
	_ = f.SetCellValue(deliveriesSheet, "D1", "Level Before Next")
	_ = f.SetCellValue(deliveriesSheet, "E1", "Taken (L)")
	for i, event := range report.Events {
		row := i + 2
		_ = f.SetCellValue(deliveriesSheet, fmt.Sprintf("A%d", row), event.To.Author)
		_ = f.SetCellValue(deliveriesSheet, fmt.Sprintf("B%d", row), event.To.LoggedAt.Format("2006-01-02 15:04:05"))
		_ = f.SetCellValue(deliveriesSheet, fmt.Sprintf("C%d", row), event.From.StockAfter)
		_ = f.SetCellValue(deliveriesSheet, fmt.Sprintf("D%d", row), event.To.StockBefore)
		_ = f.SetCellValue(deliveriesSheet, fmt.Sprintf("E%d", row), event.VolumeTaken)
	}

	_ = f.SetCellValue(payoutSheet, "A1", "Trip Revenue")
	_ = f.SetCellValue(payoutSheet, "B1", breakdown.TripRevenue)
	_ = f.SetCellValue(payoutSheet, "A2", "Volume Revenue")
	_ = f.SetCellValue(payoutSheet, "B2", breakdown.VolumeRevenue)
	_ = f.SetCellValue(payoutSheet, "A3", "Gross Total")
	_ = f.SetCellValue(payoutSheet, "B3", breakdown.GrossTotal)
	_ = f.SetCellValue(payoutSheet, "A4", "Net Total")
	_ = f.SetCellValue(payoutSheet, "B4", breakdown.NetTotal)
	row := 6
	for _, name := range sortedKeys(breakdown.Shares) {
		_ = f.SetCellValue(payoutSheet, fmt.Sprintf("A%d", row), name)
		_ = f.SetCellValue(payoutSheet, fmt.Sprintf("B%d", row), breakdown.Shares[name])
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
