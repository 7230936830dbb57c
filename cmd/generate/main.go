package main

import (
	"flag"
	"fmt"
	"log"

	"followup-report/internal/models"
	"followup-report/internal/services"
	"followup-report/internal/validation"
)

func main() {
	workbook := flag.String("workbook", "", "Path to the follow-up workbook (required)")
	output := flag.String("output", "", "Output path (default: Tableaux_Suivi_<date>_tous.html beside the workbook)")
	optionsFile := flag.String("options", "", "Path to a JSON report options file")
	schemaFile := flag.String("schema", "schemas/report_options_schema.json", "Path to the options JSON schema")
	flag.Parse()

	if *workbook == "" {
		log.Fatalf("-workbook is required")
	}

	var options models.ReportOptions
	if *optionsFile != "" {
		parsed, err := validation.ValidateAndParseOptions(*optionsFile, *schemaFile)
		if err != nil {
			log.Fatalf("Invalid options file: %v", err)
		}
		options = *parsed
	}

	dataService := services.NewDataService()
	htmlService := services.NewHTMLService()
	pdfService := services.NewPDFService()
	reportService := services.NewReportService(dataService, htmlService, pdfService)

	result, err := reportService.GenerateReport(models.GenerateReportRequest{
		WorkbookPath: *workbook,
		OutputPath:   *output,
		Options:      options,
	})
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	fmt.Printf("Fichier généré : %s\n", result.OutputPath)
}
