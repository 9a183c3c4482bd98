package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/ambatoeat-api/models"
)

var header = []string{"ID", "Table", "Date", "Status", "Guest", "Email", "Phone", "Canceled At"}

func row(r models.Reservation) []string {
	table := ""
	if r.Table != nil {
		table = strconv.Itoa(r.Table.TableNumber)
	}
	var name, email, phone string
	if r.User != nil {
		name, email, phone = r.User.Name, r.User.Email, r.User.Phone
	}
	canceled := ""
	if r.DeletedAt != nil {
		canceled = r.DeletedAt.UTC().Format(time.RFC3339)
	}
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		table,
		r.ReservationDate.UTC().Format(time.RFC3339),
		r.Status,
		name,
		email,
		phone,
		canceled,
	}
}

// WriteCSV writes one line per reservation after a header line.
func WriteCSV(w io.Writer, list []models.Reservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range list {
		if err := cw.Write(row(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PDF renders the reservations as a landscape A4 table.
func PDF(title string, list []models.Reservation, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated "+generatedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{15, 18, 45, 28, 45, 60, 30, 36}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, r := range list {
		for i, cell := range row(r) {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total reservations: %d", len(list)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
