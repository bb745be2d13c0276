package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/avolkov18/event-management-backend/internal/event"
	"github.com/avolkov18/event-management-backend/internal/participant"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)

// Exporter renders report rows into a downloadable file. Every method
// returns the file bytes, a filename and a content type.
type Exporter interface {
	ExportParticipants(format string, eventTitle string, rows []participant.ParticipantInfo) ([]byte, string, string, error)
	ExportOwnEvents(format string, rows []event.ListItem) ([]byte, string, string, error)
}

type exporter struct{}

func NewExporter() Exporter {
	return &exporter{}
}

var ErrUnsupportedFormat = fmt.Errorf("unsupported format")

//// ============================
/// PARTICIPANT EXPORTS
//// ============================

func (e *exporter) ExportParticipants(format, eventTitle string, rows []participant.ParticipantInfo) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")
	switch format {
	case FormatCSV:
		data, err := e.participantsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("participants_%s.csv", timestamp), "text/csv", nil
	case FormatExcel:
		data, err := e.participantsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("participants_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatPDF:
		data, err := e.participantsPDF(eventTitle, rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("participants_%s.pdf", timestamp), "application/pdf", nil
	default:
		return nil, "", "", ErrUnsupportedFormat
	}
}

func (e *exporter) participantsCSV(rows []participant.ParticipantInfo) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"username", "joined_at"}); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			r.Username,
			r.JoinedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) participantsExcel(rows []participant.ParticipantInfo) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Participants"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headers := []string{"username", "joined_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.Username); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.JoinedAt.Format("2006-01-02 15:04:05")); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) participantsPDF(eventTitle string, rows []participant.ParticipantInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Participants - %s", eventTitle))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Username", "Joined At"}
	widths := []float64{90, 60}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 8, r.Username, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, r.JoinedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

//// ============================
/// OWN EVENTS EXPORTS
//// ============================

func (e *exporter) ExportOwnEvents(format string, rows []event.ListItem) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")
	switch format {
	case FormatCSV:
		data, err := e.eventsCSV(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_events_%s.csv", timestamp), "text/csv", nil
	case FormatExcel:
		data, err := e.eventsExcel(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_events_%s.xlsx", timestamp),
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatPDF:
		data, err := e.eventsPDF(rows)
		if err != nil {
			return nil, "", "", err
		}
		return data, fmt.Sprintf("my_events_%s.pdf", timestamp), "application/pdf", nil
	default:
		return nil, "", "", ErrUnsupportedFormat
	}
}

func (e *exporter) eventsCSV(rows []event.ListItem) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write([]string{"id", "title", "description", "location", "start_at"}); err != nil {
		return nil, err
	}

	for _, r := range rows {
		record := []string{
			fmt.Sprint(r.ID),
			r.Title,
			r.Description,
			r.Location,
			r.StartAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) eventsExcel(rows []event.ListItem) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "My Events"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	headers := []string{"id", "title", "description", "location", "start_at"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for rIdx, r := range rows {
		row := rIdx + 2
		cells := map[string]interface{}{
			fmt.Sprintf("A%d", row): r.ID,
			fmt.Sprintf("B%d", row): r.Title,
			fmt.Sprintf("C%d", row): r.Description,
			fmt.Sprintf("D%d", row): r.Location,
			fmt.Sprintf("E%d", row): r.StartAt.Format("2006-01-02 15:04:05"),
		}
		for cell, v := range cells {
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (e *exporter) eventsPDF(rows []event.ListItem) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "My Events")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"ID", "Title", "Location", "Start At"}
	widths := []float64{20, 120, 80, 50}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 8, fmt.Sprint(r.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, r.Title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, r.Location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 8, r.StartAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
