package exports

import (
	"encoding/csv"
	"fmt"
	"io"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteCSV writes the header and every record of sheet to w and returns the number of bytes
// written.
func WriteCSV(w io.Writer, sheet Sheet) (int64, error) {
	counter := &countingWriter{w: w}
	writer := csv.NewWriter(counter)

	if err := writer.Write(sheet.Columns()); err != nil {
		metricExportsTotal.WithLabelValues(sheet.Report, "failed").Inc()
		return counter.n, fmt.Errorf("failed to write csv header: %w", err)
	}
	records := sheet.Records()
	if err := writer.WriteAll(records); err != nil {
		metricExportsTotal.WithLabelValues(sheet.Report, "failed").Inc()
		return counter.n, fmt.Errorf("failed to write csv records: %w", err)
	}

	metricExportsTotal.WithLabelValues(sheet.Report, "ok").Inc()
	metricExportRows.WithLabelValues(sheet.Report).Observe(float64(len(records)))
	metricExportBytesTotal.WithLabelValues(sheet.Report).Add(float64(counter.n))
	return counter.n, nil
}
