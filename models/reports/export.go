package reports

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/models"
	"github.com/tiktrack/tiktrack_backend/utils"
	"github.com/xuri/excelize/v2"
)

type reportRow struct {
	Date      string
	Revenue   decimal.Decimal
	Cogs      decimal.Decimal
	AdSpend   decimal.Decimal
	NetProfit decimal.Decimal
}

func gatherRows(ctx context.Context, start, end time.Time) ([]reportRow, error) {
	dailyReports, err := models.GetDailyReportsInRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]reportRow, 0, len(dailyReports))
	for _, report := range dailyReports {
		revenue := decimal.Zero
		cogs := decimal.Zero
		for _, sale := range report.Sales {
			revenue = revenue.Add(sale.Revenue())
			cogs = cogs.Add(sale.CalculatedCogs)
		}
		rows = append(rows, reportRow{
			Date:      report.Date.Format(utils.DateLayout),
			Revenue:   utils.DisplayAmount(revenue),
			Cogs:      utils.DisplayAmount(cogs),
			AdSpend:   utils.DisplayAmount(report.TotalAdSpend),
			NetProfit: report.NetProfit,
		})
	}
	return rows, nil
}

// ExportPdf streams a date-range report as a PDF table.
func ExportPdf(ctx context.Context, w http.ResponseWriter, start, end time.Time) error {
	rows, err := gatherRows(ctx, start, end)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Daily Reports %s - %s", start.Format(utils.DateLayout), end.Format(utils.DateLayout)))
	pdf.Ln(14)

	headers := []string{"Date", "Revenue", "COGS", "Ad Spend", "Net Profit"}
	widths := []float64{34, 38, 38, 38, 38}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 8, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 8, row.Revenue.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, row.Cogs.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, row.AdSpend.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 8, row.NetProfit.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=reports.pdf")
	return pdf.Output(w)
}

// ExportExcel streams the same date-range report as an XLSX workbook.
func ExportExcel(ctx context.Context, w http.ResponseWriter, start, end time.Time) error {
	rows, err := gatherRows(ctx, start, end)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Add headers
	f.SetCellValue(sheet, "A1", "Date")
	f.SetCellValue(sheet, "B1", "Revenue")
	f.SetCellValue(sheet, "C1", "COGS")
	f.SetCellValue(sheet, "D1", "AdSpend")
	f.SetCellValue(sheet, "E1", "NetProfit")

	// Add data
	for i, row := range rows {
		n := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+n, row.Date)
		f.SetCellValue(sheet, "B"+n, row.Revenue.InexactFloat64())
		f.SetCellValue(sheet, "C"+n, row.Cogs.InexactFloat64())
		f.SetCellValue(sheet, "D"+n, row.AdSpend.InexactFloat64())
		f.SetCellValue(sheet, "E"+n, row.NetProfit.InexactFloat64())
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=reports.xlsx")
	return f.Write(w)
}
