package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"wastage-backend/internal/models"
)

const sheetName = "Wastage"

// ToXLSX: CSV ile aynı 7 kolon, tek sayfalık çalışma kitabı
func ToXLSX(records []models.WastageEntry, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("sheet adı verilemedi: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("başlık yazılamadı: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheetName, "A1", "G1", bold)
	}

	for i, r := range records {
		var costCell interface{} = ""
		if r.Cost != nil {
			costCell = *r.Cost
		}
		row := []interface{}{
			r.ID,
			r.Date.In(loc).Format(ShortDate),
			r.Item,
			r.Quantity,
			string(r.Unit),
			string(r.Reason),
			costCell,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("satır %d yazılamadı: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 38)
	_ = f.SetColWidth(sheetName, "C", "C", 28)
	_ = f.SetColWidth(sheetName, "F", "F", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx oluşturulamadı: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}
