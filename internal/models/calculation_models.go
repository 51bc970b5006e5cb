package models

// NightInputs are the aggregate figures submitted alongside a labor report.
// GotabTips + CashTips is the pooled tip amount allocated for the night.
type NightInputs struct {
	Date       Date  `json:"date"`
	TotalSales Money `json:"total_sales"`
	GotabTips  Money `json:"gotab_tips"`
	CashTips   Money `json:"cash_tips"`
}

// Pool returns the total pooled tip amount for the night.
func (n NightInputs) Pool() Money {
	return n.GotabTips.Add(n.CashTips)
}

// Tip is one employee/role share of a night's pool as produced by the
// allocator. Transient: consumed by the summary builder and persisted through
// the staff ledger as a TippedDay.
type Tip struct {
	Employee           string  `json:"employee"`
	Role               string  `json:"role"`
	NetTips            Money   `json:"net_tips"`
	TotalPayForNight   Money   `json:"total_pay_for_night"`
	HourlyPayForNight  Money   `json:"hourly_pay_for_night"`
	TippedHourForNight float64 `json:"tipped_hour_for_night"`
	Duration           float64 `json:"duration"`
	EID                int64   `json:"eid"`
}

// Summary aggregates a night's Tip set. Derived, never independently stored.
type Summary struct {
	TotalTips           Money `json:"total_tips"`
	AverageNetHourlyPay Money `json:"average_net_hourly_pay"`
}

// CalculationsResponse is the full result of one calculation run. The links
// point at generated download artifacts, not at ledger state.
type CalculationsResponse struct {
	CalculationsLink string  `json:"calculations_link"`
	TemplateLink     string  `json:"template_link"`
	Summary          Summary `json:"summary"`
	Tips             []Tip   `json:"tips"`
}
