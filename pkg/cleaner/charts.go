// pkg/cleaner/charts.go
package cleaner

import (
	"fmt"
	"strings"

	"github.com/David-Botos/data-triage/pkg/dataset"
)

// RecommendCharts suggests chart types the cleaned dataset can support,
// based on its column-type mix.
func RecommendCharts(d *dataset.Dataset) []string {
	var numeric, categorical, dates []string
	for _, col := range d.Columns {
		switch col.Type {
		case dataset.TypeNumeric:
			numeric = append(numeric, col.Name)
		case dataset.TypeText:
			categorical = append(categorical, col.Name)
		case dataset.TypeTime:
			dates = append(dates, col.Name)
		}
	}

	var recommendations []string
	if len(numeric) >= 2 {
		recommendations = append(recommendations,
			fmt.Sprintf("Scatter Plot: %s vs %s", numeric[0], numeric[1]))
		head := numeric
		if len(head) > 3 {
			head = head[:3]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Correlation Heatmap: %s", strings.Join(head, ", ")))
	}
	if len(categorical) > 0 && len(numeric) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Bar Chart: %s vs %s (Avg)", categorical[0], numeric[0]))
	}
	if len(dates) > 0 && len(numeric) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("Line Chart (Trend): %s over Time", numeric[0]))
	}
	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Data table view (Insufficient columns for advanced charts)")
	}
	return recommendations
}
