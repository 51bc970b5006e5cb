package payroll

import "tiproom_backend/internal/models"

// BuildSummary aggregates a night's Tip set. Pure recomputation: the summary
// is derived from the tips every time and never stored on its own, so it
// cannot drift from the records it describes.
//
// The hourly average is the arithmetic mean over records that actually worked
// hours; zero-duration records contribute nothing to either term.
func BuildSummary(tips []models.Tip) models.Summary {
	var total models.Money
	var hourlySum int64
	var worked int64
	for _, t := range tips {
		total = total.Add(t.NetTips)
		if t.Duration > 0 {
			hourlySum += int64(t.HourlyPayForNight)
			worked++
		}
	}
	var average models.Money
	if worked > 0 {
		average = models.Money((hourlySum + worked/2) / worked)
	}
	return models.Summary{
		TotalTips:           total,
		AverageNetHourlyPay: average,
	}
}
