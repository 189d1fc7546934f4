package models

// UsageReport holds the recursive byte totals per retention tier.
type UsageReport struct {
	HotBytes   int64 `json:"hot_bytes"`
	WarmBytes  int64 `json:"warm_bytes"`
	ColdBytes  int64 `json:"cold_bytes"`
	TotalBytes int64 `json:"total_bytes"`
}
