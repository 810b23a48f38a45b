package timelog

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

// RenderSummary lays the weekly summary out as one row per day with a
// column per task type, a SUM column, and a Total row at the bottom.
func (t *CsvSummaryRendererImpl) RenderSummary(summary WeeklySummary) (string, error) {
	header := make([]string, 0, len(summary.TaskTypes)+2)
	header = append(header, "")
	header = append(header, summary.TaskTypes...)
	header = append(header, "SUM")

	data := make([][]string, 0, len(summary.Days)+2)
	data = append(data, header)

	for _, day := range summary.Days {
		row := make([]string, 0, len(summary.TaskTypes)+2)
		row = append(row, day.Date.Format("02/01/2006"))
		for _, taskType := range summary.TaskTypes {
			row = append(row, minutesToString(day.Minutes[taskType]))
		}
		row = append(row, minutesToString(day.Total))
		data = append(data, row)
	}

	totals := make([]string, 0, len(summary.TaskTypes)+2)
	totals = append(totals, "Total")
	for _, taskType := range summary.TaskTypes {
		totals = append(totals, minutesToString(summary.Totals[taskType]))
	}
	totals = append(totals, minutesToString(summary.Total))
	data = append(data, totals)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func minutesToString(minutes int) string {
	hours := strconv.Itoa(minutes / 60)
	if len(hours) == 1 {
		hours = "0" + hours
	}
	mins := strconv.Itoa(minutes % 60)
	if len(mins) == 1 {
		mins = "0" + mins
	}
	return hours + ":" + mins
}
