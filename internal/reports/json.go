package reports

import (
	"encoding/json"
)

// FormatMonthlyJSON formats a monthly report as JSON.
func FormatMonthlyJSON(report *MonthlyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// FormatOverviewJSON formats the all-time overview as JSON.
func FormatOverviewJSON(o *Overview) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}
