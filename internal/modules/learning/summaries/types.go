package summaries

type generateSummaryDTO struct {
	MaterialID  string `json:"material_id"  binding:"required"`
	SummaryType string `json:"summary_type"`
}
