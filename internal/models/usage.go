package models

// UsageEventModel is a best-effort audit row behind the in-memory usage
// ledger. Writes never block or fail a generation.
type UsageEventModel struct {
	Base
	Provider     string  `json:"provider"      gorm:"size:64;index;not null"`
	Model        string  `json:"model"         gorm:"size:128"`
	Operation    string  `json:"operation"     gorm:"size:64;index;not null"`
	InputTokens  int     `json:"input_tokens"  gorm:"not null"`
	OutputTokens int     `json:"output_tokens" gorm:"not null"`
	CostUSD      float64 `json:"cost_usd"      gorm:"not null"`
	CacheHit     bool    `json:"cache_hit"     gorm:"not null;default:false"`
}

func (UsageEventModel) TableName() string { return "usage_events" }
