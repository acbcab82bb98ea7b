package actgrid

import "fmt"

// Структурные мутации: вставка и удаление строк/колонок с согласованным
// пересчётом объединений. Вся валидация выполняется до первого изменения
// матрицы; после мутации сетка нормализуется и снова удовлетворяет
// инвариантам.

func (g *Grid) spliceRow(at int, row []Cell) {
	g.Cells = append(g.Cells, nil)
	copy(g.Cells[at+1:], g.Cells[at:])
	g.Cells[at] = row
}

// InsertRowAbove вставляет строку данных выше выбранной. Если выбранная
// строка накрыта вертикальным объединением, вставка смещается к началу
// блока, а само объединение растёт вниз на одну строку, не меняя визуальной
// верхней границы. Возвращает фактический индекс вставки.
func InsertRowAbove(g *Grid, row int) (int, error) {
	if row < 0 || row >= g.NumRows() {
		return 0, fmt.Errorf("%w: строка %d вне границ", ErrStructural, row)
	}
	if g.isHeaderRow(row) {
		return 0, fmt.Errorf("%w: нельзя вставить строку выше заголовка", ErrHeaderRestricted)
	}
	at := rowStartOfSpan(g, row)
	return insertRowAt(g, at, row), nil
}

// InsertRowBelow вставляет строку данных ниже выбранной, после всех
// объединений, накрывающих её. Возвращает фактический индекс вставки.
func InsertRowBelow(g *Grid, row int) (int, error) {
	if row < 0 || row >= g.NumRows() {
		return 0, fmt.Errorf("%w: строка %d вне границ", ErrStructural, row)
	}
	at := rowEndOfSpan(g, row)
	return insertRowAt(g, at, -1), nil
}

// insertRowAt выполняет вставку по уже скорректированному индексу at.
// selRow >= 0 — исходно выбранная строка: объединение, начинающееся ровно на
// границе вставки и накрывающее selRow, поглощает новую строку (якорь блока
// переезжает в неё).
func insertRowAt(g *Grid, at, selRow int) int {
	cols := g.NumCols()
	var absorb []int
	for r := 0; r < g.NumRows(); r++ {
		for c := 0; c < cols; c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned || cell.RowSpan <= 1 {
				continue
			}
			switch {
			case r < at && r+cell.RowSpan > at:
				// объединение пересекает границу вставки — растёт на строку
				cell.RowSpan++
			case r == at && selRow > r && r+cell.RowSpan > selRow:
				cell.RowSpan++
				absorb = append(absorb, c)
			}
		}
	}
	newRow := make([]Cell, cols)
	for c := range newRow {
		newRow[c] = newDataCell(at, c)
	}
	g.spliceRow(at, newRow)
	// поглощение: якорная ячейка блока переезжает в новую строку
	for _, c := range absorb {
		g.Cells[at][c] = g.Cells[at+1][c]
		g.Cells[at+1][c] = newDataCell(at+1, c)
	}
	g.normalize()
	return at
}

// InsertColumnLeft вставляет колонку левее выбранной с учётом горизонтальных
// объединений. Ячейка новой колонки в строке заголовка создаётся как
// заголовочная, в остальных строках — как данные.
func InsertColumnLeft(g *Grid, col int) (int, error) {
	if col < 0 || col >= g.NumCols() {
		return 0, fmt.Errorf("%w: колонка %d вне границ", ErrStructural, col)
	}
	at := colStartOfSpan(g, col)
	return insertColAt(g, at, col), nil
}

// InsertColumnRight вставляет колонку правее выбранной, после всех
// объединений, накрывающих её.
func InsertColumnRight(g *Grid, col int) (int, error) {
	if col < 0 || col >= g.NumCols() {
		return 0, fmt.Errorf("%w: колонка %d вне границ", ErrStructural, col)
	}
	at := colEndOfSpan(g, col)
	return insertColAt(g, at, -1), nil
}

func insertColAt(g *Grid, at, selCol int) int {
	hr := g.HeaderRowIndex()
	var absorb []int
	for r := 0; r < g.NumRows(); r++ {
		for c := 0; c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned || cell.ColSpan <= 1 {
				continue
			}
			switch {
			case c < at && c+cell.ColSpan > at:
				cell.ColSpan++
			case c == at && selCol > c && c+cell.ColSpan > selCol:
				cell.ColSpan++
				absorb = append(absorb, r)
			}
		}
	}
	for r := range g.Cells {
		var nc Cell
		if r == hr {
			nc = newHeaderCell(r, at)
		} else {
			nc = newDataCell(r, at)
		}
		row := append(g.Cells[r], Cell{})
		copy(row[at+1:], row[at:])
		row[at] = nc
		g.Cells[r] = row
	}
	for _, r := range absorb {
		g.Cells[r][at] = g.Cells[r][at+1]
		g.Cells[r][at+1] = newDataCell(r, at+1)
	}
	g.normalize()
	return at
}

// DeleteRow удаляет строку. Строгая проверка объединений: строка блокируется,
// если её касается любое объединение, даже начинающееся вне неё.
func DeleteRow(g *Grid, row int) error {
	if row < 0 || row >= g.NumRows() {
		return fmt.Errorf("%w: строка %d вне границ", ErrStructural, row)
	}
	if g.isHeaderRow(row) {
		return fmt.Errorf("%w: нельзя удалить строку заголовка", ErrHeaderRestricted)
	}
	for c := range g.Cells[row] {
		cell := &g.Cells[row][c]
		if cell.IsSpanned || cell.RowSpan > 1 || cell.ColSpan > 1 {
			return fmt.Errorf("%w: строка содержит объединённые ячейки — сначала разъедините их", ErrStructural)
		}
	}
	if g.dataRowCount() <= 1 {
		return fmt.Errorf("%w: в таблице должна остаться хотя бы одна строка данных", ErrStructural)
	}
	for r := 0; r < row; r++ {
		for c := 0; c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if !cell.IsSpanned && cell.RowSpan > 1 && r+cell.RowSpan > row {
				cell.RowSpan--
			}
		}
	}
	g.Cells = append(g.Cells[:row], g.Cells[row+1:]...)
	g.normalize()
	return nil
}

// DeleteColumn удаляет колонку с той же строгой проверкой объединений.
func DeleteColumn(g *Grid, col int) error {
	if col < 0 || col >= g.NumCols() {
		return fmt.Errorf("%w: колонка %d вне границ", ErrStructural, col)
	}
	if g.NumCols() == 1 {
		return fmt.Errorf("%w: нельзя удалить последнюю колонку", ErrStructural)
	}
	for r := range g.Cells {
		cell := &g.Cells[r][col]
		if cell.IsSpanned || cell.RowSpan > 1 || cell.ColSpan > 1 {
			return fmt.Errorf("%w: колонка содержит объединённые ячейки — сначала разъедините их", ErrStructural)
		}
	}
	for r := 0; r < g.NumRows(); r++ {
		for c := 0; c < col; c++ {
			cell := &g.Cells[r][c]
			if !cell.IsSpanned && cell.ColSpan > 1 && c+cell.ColSpan > col {
				cell.ColSpan--
			}
		}
	}
	for r := range g.Cells {
		g.Cells[r] = append(g.Cells[r][:col], g.Cells[r][col+1:]...)
	}
	g.normalize()
	return nil
}
