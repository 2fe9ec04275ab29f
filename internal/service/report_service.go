package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Donny1114/Device-Management-System/internal/model"
	"github.com/Donny1114/Device-Management-System/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

const (
	SpreadsheetSheet = "Sheet1"
	DocumentTitle    = "Device Report"

	documentBreakMargin = 15.0
	documentCellWidth   = 200.0
	documentCellHeight  = 10.0
)

// ReportService exports the whole device registry. The Write* methods stream
// to w; the Export* methods write a file at path.
type ReportService interface {
	WriteSpreadsheet(ctx context.Context, w io.Writer) error
	WriteDocument(ctx context.Context, w io.Writer) error
	WriteCSV(ctx context.Context, w io.Writer) error

	ExportSpreadsheet(ctx context.Context, path string) error
	ExportDocument(ctx context.Context, path string) error
	ExportCSV(ctx context.Context, path string) error
}

type renderFunc func(devices []model.Device) (*bytes.Buffer, error)

type reportService struct {
	repo   repository.DeviceRepository
	logger *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repo repository.DeviceRepository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) WriteSpreadsheet(ctx context.Context, w io.Writer) error {
	return s.write(ctx, w, RenderSpreadsheet)
}

func (s *reportService) WriteDocument(ctx context.Context, w io.Writer) error {
	return s.write(ctx, w, RenderDocument)
}

func (s *reportService) WriteCSV(ctx context.Context, w io.Writer) error {
	return s.write(ctx, w, RenderCSV)
}

func (s *reportService) ExportSpreadsheet(ctx context.Context, path string) error {
	return s.export(ctx, path, RenderSpreadsheet)
}

func (s *reportService) ExportDocument(ctx context.Context, path string) error {
	return s.export(ctx, path, RenderDocument)
}

func (s *reportService) ExportCSV(ctx context.Context, path string) error {
	return s.export(ctx, path, RenderCSV)
}

func (s *reportService) render(ctx context.Context, render renderFunc) (*bytes.Buffer, int, error) {
	devices, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, 0, dataAccessError(err)
	}
	buf, err := render(devices)
	if err != nil {
		return nil, 0, err
	}
	return buf, len(devices), nil
}

func (s *reportService) write(ctx context.Context, w io.Writer, render renderFunc) error {
	buf, _, err := s.render(ctx, render)
	if err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return ioError(err)
	}
	return nil
}

// export renders fully before touching the file system, then replaces path
// via a temp file in the same directory so a failed export leaves no partial file.
func (s *reportService) export(ctx context.Context, path string, render renderFunc) error {
	buf, count, err := s.render(ctx, render)
	if err != nil {
		return err
	}

	mode, err := destinationMode(path)
	if err != nil {
		return ioError(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return ioError(err)
	}
	tmpName := tmp.Name()

	if _, err := buf.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ioError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ioError(err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return ioError(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return ioError(err)
	}

	s.logger.Info("report exported", zap.String("path", path), zap.Int("devices", count))
	return nil
}

// destinationMode returns the permissions the exported file gets: those of
// the file being replaced, or 0644 for a new file. A directory or a file
// without owner write permission is refused.
func destinationMode(path string) (os.FileMode, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0o644, nil
	}
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, &fs.PathError{Op: "export", Path: path, Err: errors.New("is a directory")}
	}
	if info.Mode().Perm()&0o200 == 0 {
		return 0, &fs.PathError{Op: "export", Path: path, Err: fs.ErrPermission}
	}
	return info.Mode().Perm(), nil
}

// RenderSpreadsheet builds an xlsx workbook: header row of column names, then
// one row per device.
func RenderSpreadsheet(devices []model.Device) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(model.DeviceColumns))
	for i, col := range model.DeviceColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(SpreadsheetSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet header: %w", err)
	}

	for i, d := range devices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address spreadsheet row: %w", err)
		}
		row := []interface{}{d.ID, d.Name, d.Type, d.Count, d.SerialNumber, d.Issues, d.Comment}
		if err := f.SetSheetRow(SpreadsheetSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write spreadsheet row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}
	return buf, nil
}

// DocumentLine formats one device for the document report. The comment
// field is not part of this line.
func DocumentLine(d model.Device) string {
	return fmt.Sprintf("ID: %d | Name: %s | Type: %s | Count: %s | Serial: %s | Issues: %s",
		d.ID, d.Name, d.Type, d.Count, d.SerialNumber, d.Issues)
}

func newDocument(devices []model.Device) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, documentBreakMargin)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(documentCellWidth, documentCellHeight, DocumentTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	// core fonts take cp1252 bytes
	enc := charmap.Windows1252.NewEncoder()
	pdf.SetFont("Arial", "", 11)
	for _, d := range devices {
		line, err := enc.String(DocumentLine(d))
		if err != nil {
			return nil, fmt.Errorf("%w: device %d: %q", ErrUnsupportedText, d.ID, DocumentLine(d))
		}
		pdf.CellFormat(documentCellWidth, documentCellHeight, line, "", 1, "", false, 0, "")
	}
	return pdf, pdf.Error()
}

// RenderDocument builds the paginated PDF report
func RenderDocument(devices []model.Device) (*bytes.Buffer, error) {
	pdf, err := newDocument(devices)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to render document: %w", err)
	}
	return buf, nil
}

// RenderCSV writes the same columns as the spreadsheet as CSV
func RenderCSV(devices []model.Device) (*bytes.Buffer, error) {
	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)

	if err := writer.Write(model.DeviceColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, d := range devices {
		if err := writer.Write(d.Row()); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("error flushing CSV writer: %w", err)
	}
	return buffer, nil
}
