package analytics

import "math"

// DetectAnomalies отмечает дни, отклоняющиеся от среднего более чем на два
// стандартных отклонения. Ряд без вариации аномалий не содержит.
func DetectAnomalies(timeline []TimelinePoint) []AnomalyRecord {
	if len(timeline) == 0 {
		return nil
	}

	amounts := make([]float64, len(timeline))
	for i, point := range timeline {
		amounts[i] = point.Amount
	}

	mean := meanOf(amounts)
	stdDev := stdDevOf(amounts, mean)
	if stdDev == 0 {
		return nil
	}

	var anomalies []AnomalyRecord
	for _, point := range timeline {
		if math.Abs(point.Amount-mean) <= 2*stdDev {
			continue
		}

		deviationPct := 0.0
		if mean != 0 {
			deviationPct = (point.Amount - mean) / mean * 100
		}

		anomalyType := "drop"
		if point.Amount > mean {
			anomalyType = "spike"
		}

		anomalies = append(anomalies, AnomalyRecord{
			Date:         point.Date,
			Amount:       point.Amount,
			DeviationPct: round1(deviationPct),
			Type:         anomalyType,
		})
	}

	return anomalies
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDevOf(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
