package timelog

import (
	"testing"
	"time"
)

func TestCsvSummaryRendererImpl_RenderSummary(t1 *testing.T) {
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	days := make([]DailySummary, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, DailySummary{Date: monday.AddDate(0, 0, i), Minutes: map[string]int{}})
	}
	days[0].Minutes["Throwing"] = 90
	days[0].Total = 90
	days[6].Minutes["Glazing"] = 45
	days[6].Total = 45

	tests := []struct {
		name    string
		summary WeeklySummary
		want    string
	}{
		{
			name: "week with two task types",
			summary: WeeklySummary{
				StartDate: monday,
				EndDate:   monday.AddDate(0, 0, 6),
				Days:      days,
				TaskTypes: []string{"Throwing", "Glazing"},
				Totals:    map[string]int{"Throwing": 90, "Glazing": 45},
				Total:     135,
			},
			want: ",Throwing,Glazing,SUM\n" +
				"13/05/2024,01:30,00:00,01:30\n" +
				"14/05/2024,00:00,00:00,00:00\n" +
				"15/05/2024,00:00,00:00,00:00\n" +
				"16/05/2024,00:00,00:00,00:00\n" +
				"17/05/2024,00:00,00:00,00:00\n" +
				"18/05/2024,00:00,00:00,00:00\n" +
				"19/05/2024,00:00,00:45,00:45\n" +
				"Total,01:30,00:45,02:15\n",
		},
		{
			name: "empty week",
			summary: WeeklySummary{
				StartDate: monday,
				EndDate:   monday.AddDate(0, 0, 6),
				Days:      []DailySummary{{Date: monday, Minutes: map[string]int{}}},
				Totals:    map[string]int{},
			},
			want: ",SUM\n" +
				"13/05/2024,00:00\n" +
				"Total,00:00\n",
		},
	}
	for _, tt := range tests {
		t1.Run(tt.name, func(t *testing.T) {
			renderer := NewCsvSummaryRenderer()
			got, err := renderer.RenderSummary(tt.summary)
			if err != nil {
				t.Errorf("RenderSummary() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("RenderSummary() got = %v, want %v", got, tt.want)
			}
		})
	}
}
