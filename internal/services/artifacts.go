package services

import (
	"encoding/csv"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tiproom_backend/internal/models"
)

// ArtifactWriter generates the per-night download artifacts: a calculations
// workbook for the manager and a pay-card funding template for the payment
// provider. The artifacts are collaborator-facing files, not ledger state;
// regenerating a night simply overwrites them.
type ArtifactWriter struct {
	Dir             string // filesystem directory for generated files
	PublicBase      string // URL prefix the files are served under
	FundingCardID   string
	FundingPasscode string
}

const calculationsSheet = "Calculations"

var calculationsHeader = []string{
	"Employee", "Role", "Net Tips", "Total Pay For Night",
	"Hourly Pay For Night", "Duration (hrs)", "EID", "Date",
}

var templateHeader = []string{
	"Funding Card ID", "Funding Card Passcode", "Reserved1", "Cardholder Account",
	"Amount", "Reserved2", "Reserved3", "Reserved4", "Reference",
}

// WriteNight writes both artifacts for a date and returns their public links.
// cards maps eid to the member's pay-card account for the funding template.
func (w *ArtifactWriter) WriteNight(date models.Date, tips []models.Tip, cards map[int64]string) (string, string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating downloads dir: %w", err)
	}

	calcName := fmt.Sprintf("%s_tip_pool_calculations.xlsx", date)
	if err := w.writeCalculations(filepath.Join(w.Dir, calcName), date, tips); err != nil {
		return "", "", err
	}

	templateName := fmt.Sprintf("%s_rapidpay_upload_template.csv", date)
	if err := w.writeFundingTemplate(filepath.Join(w.Dir, templateName), date, tips, cards); err != nil {
		return "", "", err
	}

	return path.Join(w.PublicBase, calcName), path.Join(w.PublicBase, templateName), nil
}

func (w *ArtifactWriter) writeCalculations(filename string, date models.Date, tips []models.Tip) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(calculationsSheet)
	if err != nil {
		return fmt.Errorf("creating calculations sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, name := range calculationsHeader {
		column, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("writing calculations header: %w", err)
		}
		f.SetCellValue(calculationsSheet, column+"1", name)
	}
	for i, tip := range tips {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(calculationsSheet, "A"+row, tip.Employee)
		f.SetCellValue(calculationsSheet, "B"+row, tip.Role)
		f.SetCellValue(calculationsSheet, "C"+row, tip.NetTips.String())
		f.SetCellValue(calculationsSheet, "D"+row, tip.TotalPayForNight.String())
		f.SetCellValue(calculationsSheet, "E"+row, tip.HourlyPayForNight.String())
		f.SetCellValue(calculationsSheet, "F"+row, tip.Duration)
		f.SetCellValue(calculationsSheet, "G"+row, tip.EID)
		f.SetCellValue(calculationsSheet, "H"+row, date.String())
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("saving calculations workbook: %w", err)
	}
	return nil
}

func (w *ArtifactWriter) writeFundingTemplate(filename string, date models.Date, tips []models.Tip, cards map[int64]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating funding template: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(templateHeader); err != nil {
		return fmt.Errorf("writing funding template header: %w", err)
	}
	for _, tip := range tips {
		row := []string{
			w.FundingCardID, w.FundingPasscode, "",
			cards[tip.EID], tip.NetTips.String(),
			"", "", "", date.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing funding template row for eid %d: %w", tip.EID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing funding template: %w", err)
	}
	return nil
}
