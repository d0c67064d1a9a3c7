package wakatime

// summariesResponse mirrors the WakaTime summaries payload.
// Only the fields we consume are declared.
type summariesResponse struct {
	Data []summaryDay `json:"data"`
}

type summaryDay struct {
	GrandTotal grandTotal   `json:"grand_total"`
	Range      summaryRange `json:"range"`
}

type grandTotal struct {
	TotalSeconds float64 `json:"total_seconds"`
}

type summaryRange struct {
	Date string `json:"date"`
}
