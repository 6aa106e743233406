package cli

import (
	"encoding/csv"
	"os"
	"strconv"
)

// saveCSV writes one row per sample, no header.
func saveCSV(filename string, rows [][]float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for _, row := range rows {
		record := make([]string, len(row))
		for j, val := range row {
			record[j] = strconv.FormatFloat(val, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
