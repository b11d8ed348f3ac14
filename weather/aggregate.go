// Package weather implements the time-series analysis performed on fetched
// hourly forecasts: daily aggregation and trailing moving averages. All
// functions are pure and deterministic.
package weather

import (
	"math"

	"weatherdash.app/models"
)

// Field names a column of an hourly series
type Field string

const (
	FieldTemperature   Field = "temperature"
	FieldWindSpeed     Field = "wind_speed"
	FieldPrecipitation Field = "precipitation"
)

// FieldValues extracts one column of the series in sample order
func FieldValues(series *models.TimeSeries, field Field) []float64 {
	if series == nil {
		return nil
	}
	values := make([]float64, len(series.Samples))
	for i, s := range series.Samples {
		switch field {
		case FieldWindSpeed:
			values[i] = s.WindSpeed
		case FieldPrecipitation:
			values[i] = s.Precipitation
		default:
			values[i] = s.Temperature
		}
	}
	return values
}

type dailyAccumulator struct {
	date      string
	tempMin   float64
	tempMax   float64
	tempSum   float64
	tempCount int
	windMax   float64
	windSum   float64
	windCount int
}

// DailyAggregates reduces an hourly series to one record per local calendar
// date present in the series, in chronological order. Each field is aggregated
// independently: a NaN temperature for an hour does not suppress that hour's
// wind contribution. Dates with no samples produce no record.
func DailyAggregates(series *models.TimeSeries) []models.DailyAggregate {
	if series == nil || len(series.Samples) == 0 {
		return []models.DailyAggregate{}
	}

	byDate := make(map[string]*dailyAccumulator)
	order := make([]string, 0)

	for _, sample := range series.Samples {
		date := sample.Time.Format("2006-01-02")
		acc, ok := byDate[date]
		if !ok {
			acc = &dailyAccumulator{date: date}
			byDate[date] = acc
			order = append(order, date)
		}

		if !math.IsNaN(sample.Temperature) {
			if acc.tempCount == 0 || sample.Temperature < acc.tempMin {
				acc.tempMin = sample.Temperature
			}
			if acc.tempCount == 0 || sample.Temperature > acc.tempMax {
				acc.tempMax = sample.Temperature
			}
			acc.tempSum += sample.Temperature
			acc.tempCount++
		}
		if !math.IsNaN(sample.WindSpeed) {
			if acc.windCount == 0 || sample.WindSpeed > acc.windMax {
				acc.windMax = sample.WindSpeed
			}
			acc.windSum += sample.WindSpeed
			acc.windCount++
		}
	}

	aggregates := make([]models.DailyAggregate, 0, len(order))
	for _, date := range order {
		acc := byDate[date]
		agg := models.DailyAggregate{
			Date:            acc.date,
			TemperatureMin:  math.NaN(),
			TemperatureMean: math.NaN(),
			TemperatureMax:  math.NaN(),
			WindSpeedMean:   math.NaN(),
			WindSpeedMax:    math.NaN(),
		}
		if acc.tempCount > 0 {
			agg.TemperatureMin = acc.tempMin
			agg.TemperatureMean = acc.tempSum / float64(acc.tempCount)
			agg.TemperatureMax = acc.tempMax
		}
		if acc.windCount > 0 {
			agg.WindSpeedMean = acc.windSum / float64(acc.windCount)
			agg.WindSpeedMax = acc.windMax
		}
		aggregates = append(aggregates, agg)
	}

	return aggregates
}

// RollingAverage computes a trailing moving average of one field over the
// series. Output length equals input length. For index i the value is the mean
// of values[max(0,i-window+1)..i], so the first window-1 entries are
// partial-window means rather than undefined. A window of 1 returns the field
// values unchanged.
func RollingAverage(series *models.TimeSeries, field Field, window int) []float64 {
	return rollingMean(FieldValues(series, field), window)
}

func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}

	// Windows are small (<=7 in the UI) and series are bounded, so the direct
	// per-window sum is fine and avoids running-sum drift around NaN entries.
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		var sum float64
		for _, v := range values[lo : i+1] {
			sum += v
		}
		out[i] = sum / float64(i+1-lo)
	}
	return out
}

// SummarizeDay condenses a single day's hourly series for the chatbot prompt:
// high and low temperature, mean wind speed, and total precipitation. NaN
// entries are skipped per field, matching DailyAggregates.
func SummarizeDay(series *models.TimeSeries) models.DaySummary {
	summary := models.DaySummary{}
	if series == nil || len(series.Samples) == 0 {
		return summary
	}

	var (
		tempCount int
		windSum   float64
		windCount int
	)
	for _, sample := range series.Samples {
		if !math.IsNaN(sample.Temperature) {
			if tempCount == 0 || sample.Temperature > summary.HighTemp {
				summary.HighTemp = sample.Temperature
			}
			if tempCount == 0 || sample.Temperature < summary.LowTemp {
				summary.LowTemp = sample.Temperature
			}
			tempCount++
		}
		if !math.IsNaN(sample.WindSpeed) {
			windSum += sample.WindSpeed
			windCount++
		}
		if !math.IsNaN(sample.Precipitation) {
			summary.TotalPrecip += sample.Precipitation
		}
	}
	if windCount > 0 {
		summary.AvgWind = windSum / float64(windCount)
	}
	return summary
}
