package main

import (
	"os"

	"pokedex/internal/charts"
	"pokedex/pkg/models"
)

func writeFile(path string, chart *models.ChartSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := charts.WriteCSV(f, chart); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
