package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"netflow/internal/engine"
	"netflow/internal/graph"
	"netflow/pkg/apperror"
)

// ExcelExporter renders a solved run as an XLSX workbook with a
// summary sheet and an edge flow sheet.
type ExcelExporter struct{}

// NewExcelExporter creates an exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export builds the workbook in memory.
func (g *ExcelExporter) Export(summary *Summary, rg *graph.ResidualGraph, cut *engine.MinCut) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	g.writeSummarySheet(f, headerStyle, summary, cut)
	g.writeEdgeSheet(f, headerStyle, rg)

	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternal, "writing xlsx workbook")
	}
	return buf.Bytes(), nil
}

// WriteFile exports the workbook into dir and returns the file path.
// The directory is created if missing; the file name is derived from
// the input name and a timestamp.
func (g *ExcelExporter) WriteFile(dir string, summary *Summary, rg *graph.ResidualGraph, cut *engine.MinCut) (string, error) {
	data, err := g.Export(summary, rg, cut)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternal, "creating report directory "+dir)
	}

	base := strings.TrimSuffix(summary.InputFile, filepath.Ext(summary.InputFile))
	if base == "" {
		base = "run"
	}
	name := fmt.Sprintf("%s_%s.xlsx", base, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternal, "writing report file "+path)
	}
	return path, nil
}

func (g *ExcelExporter) writeSummarySheet(f *excelize.File, headerStyle int, s *Summary, cut *engine.MinCut) {
	sheet := "Summary"
	f.NewSheet(sheet)

	row := 1
	f.SetCellValue(sheet, cellAddr("A", row), "Max Flow Report")
	f.MergeCell(sheet, cellAddr("A", row), cellAddr("B", row))
	row += 2

	f.SetCellValue(sheet, cellAddr("A", row), "Run")
	f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("B", row), headerStyle)
	row++

	pairs := []struct {
		name  string
		value any
	}{
		{"Input File", s.InputFile},
		{"Algorithm", s.Algorithm},
		{"Nodes", s.Nodes},
		{"Edges", s.Edges},
		{"Source", s.Source},
		{"Sink", s.Sink},
		{"Maximum Flow", s.MaxFlow},
		{"Augmenting Paths", s.Iterations},
		{"Parse Time (ms)", float64(s.ParseTime.Microseconds()) / 1000},
		{"Solve Time (ms)", float64(s.SolveTime.Microseconds()) / 1000},
	}
	for _, p := range pairs {
		f.SetCellValue(sheet, cellAddr("A", row), p.name)
		f.SetCellValue(sheet, cellAddr("B", row), p.value)
		row++
	}

	if cut != nil {
		row++
		f.SetCellValue(sheet, cellAddr("A", row), "Minimum Cut")
		f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("C", row), headerStyle)
		row++

		headers := []string{"From", "To", "Capacity"}
		for i, h := range headers {
			f.SetCellValue(sheet, cellAddr(string(rune('A'+i)), row), h)
		}
		f.SetCellStyle(sheet, cellAddr("A", row), cellAddr("C", row), headerStyle)
		row++

		for _, e := range cut.Edges {
			f.SetCellValue(sheet, cellAddr("A", row), e.From)
			f.SetCellValue(sheet, cellAddr("B", row), e.To)
			f.SetCellValue(sheet, cellAddr("C", row), e.Capacity)
			row++
		}
	}

	f.SetColWidth(sheet, "A", "C", 22)
}

func (g *ExcelExporter) writeEdgeSheet(f *excelize.File, headerStyle int, rg *graph.ResidualGraph) {
	sheet := "Edge Flows"
	f.NewSheet(sheet)

	headers := []string{"From", "To", "Flow", "Capacity", "Utilization"}
	for i, h := range headers {
		f.SetCellValue(sheet, cellAddr(string(rune('A'+i)), 1), h)
	}
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	row := 2
	for _, i := range rg.ForwardEdges() {
		e := rg.Edge(i)
		var utilization float64
		if e.Capacity > 0 {
			utilization = float64(e.Flow) / float64(e.Capacity)
		}
		f.SetCellValue(sheet, cellAddr("A", row), e.From)
		f.SetCellValue(sheet, cellAddr("B", row), e.To)
		f.SetCellValue(sheet, cellAddr("C", row), e.Flow)
		f.SetCellValue(sheet, cellAddr("D", row), e.Capacity)
		f.SetCellValue(sheet, cellAddr("E", row), utilization)
		row++
	}

	f.SetColWidth(sheet, "A", "E", 14)
}

// cellAddr builds a cell address like "B7".
func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
