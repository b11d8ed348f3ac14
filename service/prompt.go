package service

import (
	"fmt"
	"strings"

	"weatherdash.app/models"
)

// promptSuffix is the fixed instruction appended to every chatbot prompt
const promptSuffix = "Answer conversationally and help the user decide if their activity is feasible."

// BuildPrompt formats the forecast summary and the user's question into the
// single prompt string sent to the chat API. The output is deterministic:
// the four summary numbers are rendered to exactly one decimal place and the
// question text is embedded verbatim, whatever characters it contains.
func BuildPrompt(
	loc *models.Location,
	forecastDate string,
	summary models.DaySummary,
	units models.UnitSystem,
	question string,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weather data for %s on %s:\n", loc.DisplayName(), forecastDate)
	fmt.Fprintf(&b, "- High Temp: %.1f %s\n", summary.HighTemp, units.TemperatureLabel())
	fmt.Fprintf(&b, "- Low Temp: %.1f %s\n", summary.LowTemp, units.TemperatureLabel())
	fmt.Fprintf(&b, "- Avg Wind: %.1f %s\n", summary.AvgWind, units.WindSpeedLabel())
	fmt.Fprintf(&b, "- Total Precipitation: %.1f mm\n", summary.TotalPrecip)
	fmt.Fprintf(&b, "User question: %s\n", question)
	b.WriteString(promptSuffix)

	return b.String()
}
