package models

// GenerateReportRequest represents the request to generate a follow-up report
type GenerateReportRequest struct {
	WorkbookPath string        `json:"workbookPath" binding:"required"`
	OutputPath   string        `json:"outputPath"` // Optional, defaults to Tableaux_Suivi_<date>_tous.html beside the workbook
	Options      ReportOptions `json:"options"`
}

// SectionSummary describes one engineer section of a generated report
type SectionSummary struct {
	Name        string `json:"name"`
	OnLeave     bool   `json:"onLeave"`
	ActionCount int    `json:"actionCount"`
}

// GenerateReportResult represents the outcome of a completed generation run
type GenerateReportResult struct {
	OutputPath  string           `json:"outputPath"`
	GeneratedAt string           `json:"generatedAt"`
	Sections    []SectionSummary `json:"sections"`
}

// TaskResponse represents the response when creating a task
type TaskResponse struct {
	TaskID string `json:"taskId"`
	Status string `json:"status"` // "pending", "processing", "completed", "failed"
}

// StatusResponse represents the response when checking task status
type StatusResponse struct {
	TaskID string                `json:"taskId"`
	Status string                `json:"status"` // "processing", "completed", "failed"
	Result *GenerateReportResult `json:"result,omitempty"`
	Error  string                `json:"error,omitempty"`
}
