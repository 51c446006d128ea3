package places

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/localsight/localsight/internal/model"
)

var exportHeader = []string{
	"name", "address", "rating", "review_count", "business_score",
	"density_score", "mean_neighbor_distance_m", "weekly_uptime_pct",
	"phone", "website", "types",
}

// WriteCSV writes annotated places as CSV with a header row.
func WriteCSV(w io.Writer, places []model.Place) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(exportHeader); err != nil {
		return eris.Wrap(err, "places: write CSV header")
	}

	for _, p := range places {
		row := []string{
			p.Name,
			p.Address,
			fmt.Sprintf("%.1f", p.Rating),
			fmt.Sprintf("%d", p.ReviewCount),
			fmt.Sprintf("%.1f", p.BusinessScore),
			fmt.Sprintf("%.4f", p.DensityScore),
			fmt.Sprintf("%.1f", p.MeanNeighborDistance),
			fmt.Sprintf("%.1f", p.UptimePercent),
			p.Phone,
			p.WebsiteURL,
			p.Types,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrapf(err, "places: write CSV row for %s", p.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "places: flush CSV")
}

// WriteXLSX writes annotated places to an XLSX workbook at path.
func WriteXLSX(path string, places []model.Place) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Places")
	if err != nil {
		return eris.Wrap(err, "places: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().Value = h
	}

	for _, p := range places {
		row := sheet.AddRow()
		row.AddCell().Value = p.Name
		row.AddCell().Value = p.Address
		row.AddCell().SetFloat(p.Rating)
		row.AddCell().SetInt(p.ReviewCount)
		row.AddCell().SetFloat(p.BusinessScore)
		row.AddCell().SetFloat(p.DensityScore)
		row.AddCell().SetFloat(p.MeanNeighborDistance)
		row.AddCell().SetFloat(p.UptimePercent)
		row.AddCell().Value = p.Phone
		row.AddCell().Value = p.WebsiteURL
		row.AddCell().Value = p.Types
	}

	return eris.Wrapf(f.Save(path), "places: save %s", path)
}
