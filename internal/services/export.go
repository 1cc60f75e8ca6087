package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"lomacli/internal/config"
	"lomacli/internal/dataset"
)

const exportSheet = "Transactions"

// ExportResult is a generated workbook ready to be streamed to the client
type ExportResult struct {
	Filename string
	Content  []byte
}

// ExportXLSX renders the filtered table view as an Excel workbook with the
// dataset's native Finnish column headers.
func (s *DataService) ExportXLSX(ctx context.Context, req SeriesRequest) (*ExportResult, error) {
	table, err := s.GetTable(ctx, req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	headers := []string{
		config.ColYear,
		config.ColMunicipalityName,
		config.ColMappingMaakunta,
		config.ColShoreline,
		config.ColCount,
		config.ColAvgArea,
		config.ColMedianPrice,
		config.ColMeanPrice,
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("export header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("export header: %w", err)
		}
	}

	for i, rec := range table.Rows {
		values := []interface{}{
			rec.Year,
			rec.MunicipalityName,
			rec.Region,
			rec.ShorelineType,
			cellValue(rec.Count),
			cellValue(rec.AvgAreaM2),
			cellValue(rec.MedianPriceEUR),
			cellValue(rec.MeanPriceEUR),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("export cell: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("export row %d: %w", i, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}

	return &ExportResult{
		Filename: fmt.Sprintf("holiday_properties_%s.xlsx", time.Now().Format("2006-01-02")),
		Content:  buf.Bytes(),
	}, nil
}

// cellValue unwraps a nullable metric for the workbook; missing values
// become empty cells.
func cellValue(n dataset.NullFloat64) interface{} {
	if !n.Valid {
		return nil
	}
	return n.Float64
}
