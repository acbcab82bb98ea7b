package actgrid

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	expro "github.com/expr-lang/expr"
	"github.com/xuri/excelize/v2"
)

// Экспорт таблицы акта в Excel: по одной визуальной ячейке на каждую
// самостоятельную ячейку сетки, объединения переносятся через MergeCell,
// строка заголовка получает жирный стиль. Плейсхолдеры {{= expr}} в
// содержимом вычисляются по данным акта через expr-lang.

var rxExpr = regexp.MustCompile(`\{\{=\s*([\s\S]+?)\s*\}\}`)

// renderContent подставляет значения {{= expr}} в содержимое ячейки.
// Неразрешимое или ошибочное выражение рендерится пустой строкой.
func renderContent(raw string, data map[string]interface{}) string {
	if !strings.Contains(raw, "{{=") {
		return raw
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return rxExpr.ReplaceAllStringFunc(raw, func(m string) string {
		sub := rxExpr.FindStringSubmatch(m)
		if len(sub) != 2 {
			return ""
		}
		program, err := expro.Compile(sub[1], expro.Env(data), expro.AllowUndefinedVariables())
		if err != nil {
			return ""
		}
		out, err := expro.Run(program, data)
		if err != nil {
			return ""
		}
		return toCellString(out)
	})
}

func toCellString(v interface{}) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		if vv == float64(int64(vv)) {
			return fmt.Sprintf("%d", int64(vv))
		}
		return fmt.Sprintf("%v", vv)
	case bool:
		if vv {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", vv)
	}
}

// WriteTable записывает сетку таблицы на лист, начиная со строки topRow
// (1-based). sizes может быть nil — тогда ширины и высоты не переносятся.
func WriteTable(f *excelize.File, sheet string, t *Table, topRow int, sizes *SizeStore, data map[string]interface{}) error {
	g := t.Grid
	if g == nil || g.NumRows() == 0 {
		return nil
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}

	// ширины колонок из процентных значений слоя размеров
	if sizes != nil {
		for c := 0; c < g.NumCols(); c++ {
			for r := 0; r < g.NumRows(); r++ {
				cell := &g.Cells[r][c]
				if cell.IsSpanned || cell.ColSpan != 1 {
					continue
				}
				w := sizes.Style(t.ID, CellRef{Row: r, Col: c}).Width
				if !strings.HasSuffix(w, "%") {
					continue
				}
				pct, perr := strconv.ParseFloat(strings.TrimSuffix(w, "%"), 64)
				if perr != nil || pct <= 0 {
					continue
				}
				name, nerr := excelize.ColumnNumberToName(c + 1)
				if nerr != nil {
					return nerr
				}
				if err := f.SetColWidth(sheet, name, name, pct); err != nil {
					return err
				}
				break
			}
		}
	}

	for r := 0; r < g.NumRows(); r++ {
		if sizes != nil {
			h := sizes.Style(t.ID, CellRef{Row: r, Col: 0}).Height
			if strings.HasSuffix(h, "px") {
				if px, perr := strconv.ParseFloat(strings.TrimSuffix(h, "px"), 64); perr == nil && px > 0 {
					// px → пункты
					if err := f.SetRowHeight(sheet, topRow+r, px*0.75); err != nil {
						return err
					}
				}
			}
		}
		for c := 0; c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned {
				continue
			}
			addr, aerr := excelize.CoordinatesToCellName(c+1, topRow+r)
			if aerr != nil {
				return aerr
			}
			if err := f.SetCellValue(sheet, addr, renderContent(cell.Content, data)); err != nil {
				return err
			}
			endAddr := addr
			if cell.RowSpan > 1 || cell.ColSpan > 1 {
				endAddr, aerr = excelize.CoordinatesToCellName(c+cell.ColSpan, topRow+r+cell.RowSpan-1)
				if aerr != nil {
					return aerr
				}
				if err := f.MergeCell(sheet, addr, endAddr); err != nil {
					return err
				}
			}
			if cell.IsHeader {
				if err := f.SetCellStyle(sheet, addr, endAddr, headerStyle); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ExportXLSX сохраняет таблицу акта в отдельный xlsx-файл. payloads — JSON с
// данными акта для подстановки плейсхолдеров (может быть пустым).
func ExportXLSX(path string, t *Table, sizes *SizeStore, payloads []string) error {
	log.Printf("📊 Экспорт таблицы %s в Excel...", t.ID)
	log.Printf("📄 Выходной файл: %s", path)
	start := time.Now()

	data := ParseActData(payloads)
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := WriteTable(f, sheet, t, 1, sizes, data); err != nil {
		log.Printf("❌ Ошибка записи таблицы: %v", err)
		return err
	}
	if err := f.SaveAs(path); err != nil {
		log.Printf("❌ Ошибка сохранения: %v", err)
		return err
	}
	log.Printf("✅ Файл создан за %v", time.Since(start))
	return nil
}
