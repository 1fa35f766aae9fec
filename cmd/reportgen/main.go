// Command reportgen aggregates the loan data files in a directory and
// writes one report file, without starting the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"kopkar/internal/dataprocessing"
	"kopkar/internal/exporter"
	"kopkar/pkg/contracts/domain"
)

type reportWriter interface {
	WriteEmployeeReport(path string, summaries []domain.EmployeeSummary) error
}

func main() {
	inDir := flag.String("in", "uploads", "directory holding the .dbf/.xlsx data files")
	outFile := flag.String("out", "", "output file path (defaults to export_data_koperasi.<format>)")
	format := flag.String("format", "csv", "report format: csv, xlsx or pdf")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var writer reportWriter
	switch strings.ToLower(*format) {
	case "csv":
		writer = exporter.NewCSVWriter(logger)
	case "xlsx":
		writer = exporter.NewExcelWriter(logger)
	case "pdf":
		writer = exporter.NewPDFWriter(logger)
	default:
		slog.Error("unsupported format", slog.String("format", *format))
		os.Exit(1)
	}

	target := *outFile
	if target == "" {
		target = fmt.Sprintf("export_data_koperasi.%s", strings.ToLower(*format))
	}

	aggregator := dataprocessing.NewAggregator(*inDir, logger)
	summaries := aggregator.Load(context.Background())

	if err := writer.WriteEmployeeReport(target, summaries); err != nil {
		slog.Error("report generation failed",
			slog.String("target", target),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("report written",
		slog.String("target", target),
		slog.Int("employees", len(summaries)))
}
