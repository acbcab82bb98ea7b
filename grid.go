package actgrid

import (
	"fmt"
)

// Матричная модель таблицы акта. Сетка всегда прямоугольная и полностью
// заполнена: каждый логический слот (row, col) содержит ровно одну ячейку —
// либо самостоятельную (возможно, начало объединения), либо накрытую чужим
// объединением (IsSpanned=true). Рендерер пропускает накрытые слоты и выводит
// по одной визуальной ячейке на каждую самостоятельную.

// CellRef — логические координаты ячейки: строка и колонка, 0-based.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell — один слот матрицы.
// Для накрытого слота (IsSpanned=true) SpanOrigin указывает на владеющую
// ячейку; собственного содержимого и объединений такой слот не имеет
// (ColSpan=RowSpan=1). OriginRow/OriginCol всегда совпадают с фактическим
// положением слота в матрице и пересчитываются после структурных сдвигов.
type Cell struct {
	Content    string   `json:"content"`
	IsHeader   bool     `json:"isHeader"`
	ColSpan    int      `json:"colSpan"`
	RowSpan    int      `json:"rowSpan"`
	IsSpanned  bool     `json:"isSpanned"`
	SpanOrigin *CellRef `json:"spanOrigin,omitempty"`
	OriginRow  int      `json:"originRow"`
	OriginCol  int      `json:"originCol"`
}

func newDataCell(row, col int) Cell {
	return Cell{ColSpan: 1, RowSpan: 1, OriginRow: row, OriginCol: col}
}

func newHeaderCell(row, col int) Cell {
	c := newDataCell(row, col)
	c.IsHeader = true
	return c
}

func newSpannedCell(row, col int, origin CellRef) Cell {
	return Cell{
		ColSpan:    1,
		RowSpan:    1,
		IsSpanned:  true,
		SpanOrigin: &CellRef{Row: origin.Row, Col: origin.Col},
		OriginRow:  row,
		OriginCol:  col,
	}
}

// Grid — прямоугольная матрица ячеек, row-major.
type Grid struct {
	Cells [][]Cell `json:"cells"`
}

// NewGrid создаёт полностью заполненную сетку rows×cols; первые headerRows
// строк помечаются как заголовок.
func NewGrid(rows, cols, headerRows int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g := &Grid{Cells: make([][]Cell, rows)}
	for r := 0; r < rows; r++ {
		g.Cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			if r < headerRows {
				g.Cells[r][c] = newHeaderCell(r, c)
			} else {
				g.Cells[r][c] = newDataCell(r, c)
			}
		}
	}
	return g
}

// NumRows возвращает число логических строк.
func (g *Grid) NumRows() int { return len(g.Cells) }

// NumCols возвращает число логических колонок (одинаково для всех строк).
func (g *Grid) NumCols() int {
	if len(g.Cells) == 0 {
		return 0
	}
	return len(g.Cells[0])
}

// Cell возвращает указатель на слот (row, col) либо nil вне границ.
func (g *Grid) Cell(row, col int) *Cell {
	if row < 0 || row >= g.NumRows() || col < 0 || col >= g.NumCols() {
		return nil
	}
	return &g.Cells[row][col]
}

func (g *Grid) inBounds(ref CellRef) bool {
	return ref.Row >= 0 && ref.Row < g.NumRows() && ref.Col >= 0 && ref.Col < g.NumCols()
}

// HeaderRowIndex возвращает индекс первой строки, содержащей хотя бы одну
// самостоятельную ячейку заголовка, либо -1, если заголовка нет.
// Единая точка определения «той самой» строки заголовка для вставки колонок.
func (g *Grid) HeaderRowIndex() int {
	for r := range g.Cells {
		for c := range g.Cells[r] {
			cell := &g.Cells[r][c]
			if !cell.IsSpanned && cell.IsHeader {
				return r
			}
		}
	}
	return -1
}

// isHeaderRow: строка считается заголовочной, если содержит самостоятельную
// ячейку заголовка либо накрыта объединением, начинающимся в заголовке.
func (g *Grid) isHeaderRow(row int) bool {
	if row < 0 || row >= g.NumRows() {
		return false
	}
	for c := range g.Cells[row] {
		cell := &g.Cells[row][c]
		if cell.IsSpanned {
			if o := cell.SpanOrigin; o != nil {
				if oc := g.Cell(o.Row, o.Col); oc != nil && oc.IsHeader {
					return true
				}
			}
			continue
		}
		if cell.IsHeader {
			return true
		}
	}
	return false
}

// dataRowCount — число строк, не относящихся к заголовку.
func (g *Grid) dataRowCount() int {
	n := 0
	for r := 0; r < g.NumRows(); r++ {
		if !g.isHeaderRow(r) {
			n++
		}
	}
	return n
}

// normalize приводит сетку к каноничному виду после структурной мутации:
// OriginRow/OriginCol каждого слота выставляются по его фактическому
// положению, границы объединений обрезаются по краям сетки, а покрытие
// IsSpanned/SpanOrigin пересчитывается заново из самостоятельных ячеек.
// Слот, переставший быть накрытым, становится пустой ячейкой данных.
func (g *Grid) normalize() {
	rows, cols := g.NumRows(), g.NumCols()
	cover := make([][]*CellRef, rows)
	for r := range cover {
		cover[r] = make([]*CellRef, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned {
				continue
			}
			if cell.RowSpan < 1 {
				cell.RowSpan = 1
			}
			if cell.ColSpan < 1 {
				cell.ColSpan = 1
			}
			if r+cell.RowSpan > rows {
				cell.RowSpan = rows - r
			}
			if c+cell.ColSpan > cols {
				cell.ColSpan = cols - c
			}
			if cell.RowSpan == 1 && cell.ColSpan == 1 {
				continue
			}
			origin := &CellRef{Row: r, Col: c}
			for rr := r; rr < r+cell.RowSpan; rr++ {
				for cc := c; cc < c+cell.ColSpan; cc++ {
					if rr == r && cc == c {
						continue
					}
					cover[rr][cc] = origin
				}
			}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if ref := cover[r][c]; ref != nil {
				g.Cells[r][c] = newSpannedCell(r, c, *ref)
				continue
			}
			cell := &g.Cells[r][c]
			if cell.IsSpanned {
				// объединение исчезло — слот снова самостоятельная пустая ячейка
				g.Cells[r][c] = newDataCell(r, c)
				continue
			}
			cell.OriginRow, cell.OriginCol = r, c
			cell.SpanOrigin = nil
		}
	}
}

// Validate проверяет структурные инварианты сетки. Используется тестами и
// отладкой; операции обязаны оставлять сетку валидной.
func (g *Grid) Validate() error {
	rows, cols := g.NumRows(), g.NumCols()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("пустая сетка")
	}
	for r := range g.Cells {
		if len(g.Cells[r]) != cols {
			return fmt.Errorf("строка %d: %d колонок вместо %d", r, len(g.Cells[r]), cols)
		}
	}
	cover := make([][]*CellRef, rows)
	for r := range cover {
		cover[r] = make([]*CellRef, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := &g.Cells[r][c]
			if cell.OriginRow != r || cell.OriginCol != c {
				return fmt.Errorf("слот (%d,%d): рассинхрон координат (%d,%d)", r, c, cell.OriginRow, cell.OriginCol)
			}
			if cell.IsSpanned {
				if cell.SpanOrigin == nil {
					return fmt.Errorf("слот (%d,%d): накрыт, но нет SpanOrigin", r, c)
				}
				continue
			}
			if cell.SpanOrigin != nil {
				return fmt.Errorf("слот (%d,%d): SpanOrigin у самостоятельной ячейки", r, c)
			}
			if cell.RowSpan < 1 || cell.ColSpan < 1 {
				return fmt.Errorf("слот (%d,%d): неположительный span %dx%d", r, c, cell.RowSpan, cell.ColSpan)
			}
			if r+cell.RowSpan > rows || c+cell.ColSpan > cols {
				return fmt.Errorf("слот (%d,%d): объединение %dx%d выходит за границы", r, c, cell.RowSpan, cell.ColSpan)
			}
			for rr := r; rr < r+cell.RowSpan; rr++ {
				for cc := c; cc < c+cell.ColSpan; cc++ {
					if rr == r && cc == c {
						continue
					}
					if cover[rr][cc] != nil {
						return fmt.Errorf("слот (%d,%d): пересечение объединений", rr, cc)
					}
					cover[rr][cc] = &CellRef{Row: r, Col: c}
				}
			}
		}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := &g.Cells[r][c]
			want := cover[r][c]
			switch {
			case want != nil && !cell.IsSpanned:
				return fmt.Errorf("слот (%d,%d): накрыт объединением (%d,%d), но не помечен", r, c, want.Row, want.Col)
			case want == nil && cell.IsSpanned:
				return fmt.Errorf("слот (%d,%d): помечен накрытым без владеющего объединения", r, c)
			case want != nil && cell.IsSpanned && *cell.SpanOrigin != *want:
				return fmt.Errorf("слот (%d,%d): SpanOrigin (%d,%d) не совпадает с фактическим (%d,%d)",
					r, c, cell.SpanOrigin.Row, cell.SpanOrigin.Col, want.Row, want.Col)
			}
		}
	}
	return nil
}
