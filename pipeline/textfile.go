package pipeline

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry returns a registry holding the gauges describing a run.
func Registry(r *Result) *prometheus.Registry {
	rows := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "wts",
		Name:      "series_rows",
		Help:      "Data rows of each census extract, by outcome.",
	}, []string{"series", "outcome"})
	aligned := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wts",
		Name:      "aligned_records",
		Help:      "Months present in both the sales and the inventories series.",
	})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wts",
		Name:      "metric_records",
		Help:      "Records written to the merged dataset.",
	})
	ratio := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wts",
		Name:      "latest_inventory_to_sales_ratio",
		Help:      "Inventory-to-sales ratio of the latest month, NaN if undefined.",
	})
	success := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wts",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last successful run.",
	})

	for name, stats := range map[string]struct {
		kept, month, year, value, duplicate int
	}{
		r.Columns.Sales:       {r.Sales.Kept, r.Sales.BadMonth, r.Sales.BadYear, r.Sales.BadValue, r.Sales.Duplicates},
		r.Columns.Inventories: {r.Inventories.Kept, r.Inventories.BadMonth, r.Inventories.BadYear, r.Inventories.BadValue, r.Inventories.Duplicates},
	} {
		rows.WithLabelValues(name, "kept").Set(float64(stats.kept))
		rows.WithLabelValues(name, "bad_month").Set(float64(stats.month))
		rows.WithLabelValues(name, "bad_year").Set(float64(stats.year))
		rows.WithLabelValues(name, "bad_value").Set(float64(stats.value))
		rows.WithLabelValues(name, "duplicate").Set(float64(stats.duplicate))
	}
	aligned.Set(float64(r.Aligned))
	records.Set(float64(len(r.Metrics)))
	ratio.Set(math.NaN())
	if n := len(r.Metrics); n > 0 && r.Metrics[n-1].Ratio.Valid {
		ratio.Set(r.Metrics[n-1].Ratio.Decimal.InexactFloat64())
	}
	success.Set(float64(r.Finished.Unix()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(rows, aligned, records, ratio, success)
	return reg
}

// WriteTextfile writes the run gauges in the node exporter textfile format.
func WriteTextfile(path string, r *Result) error {
	return prometheus.WriteToTextfile(path, Registry(r))
}
