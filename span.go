package actgrid

// Резолвер границ объединений: чистые функции, вычисляющие эффективную
// позицию вставки строки/колонки с учётом объединений, пересекающих целевой
// индекс. Вставка никогда не должна разрезать объединённый блок — позиция
// смещается к его началу либо за его конец.

// rowStartOfSpan возвращает индекс вставки «выше строки row»: если строку
// накрывает вертикальное объединение, началом считается его верхняя строка.
func rowStartOfSpan(g *Grid, row int) int {
	start := row
	for r := 0; r < row && r < g.NumRows(); r++ {
		for c := 0; c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned || cell.RowSpan <= 1 {
				continue
			}
			if cell.OriginRow+cell.RowSpan > row && cell.OriginRow < start {
				start = cell.OriginRow
			}
		}
	}
	return start
}

// rowEndOfSpan возвращает индекс вставки «ниже строки row»: первая строка
// после всех объединений, накрывающих row (включая объединения самой строки).
func rowEndOfSpan(g *Grid, row int) int {
	end := row + 1
	for r := 0; r <= row && r < g.NumRows(); r++ {
		for c := 0; c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned {
				continue
			}
			if cell.OriginRow+cell.RowSpan > row && cell.OriginRow+cell.RowSpan > end {
				end = cell.OriginRow + cell.RowSpan
			}
		}
	}
	return end
}

// colStartOfSpan — зеркальный rowStartOfSpan по оси колонок.
func colStartOfSpan(g *Grid, col int) int {
	start := col
	for r := 0; r < g.NumRows(); r++ {
		for c := 0; c < col && c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned || cell.ColSpan <= 1 {
				continue
			}
			if cell.OriginCol+cell.ColSpan > col && cell.OriginCol < start {
				start = cell.OriginCol
			}
		}
	}
	return start
}

// colEndOfSpan — зеркальный rowEndOfSpan по оси колонок.
func colEndOfSpan(g *Grid, col int) int {
	end := col + 1
	for r := 0; r < g.NumRows(); r++ {
		for c := 0; c <= col && c < g.NumCols(); c++ {
			cell := &g.Cells[r][c]
			if cell.IsSpanned {
				continue
			}
			if cell.OriginCol+cell.ColSpan > col && cell.OriginCol+cell.ColSpan > end {
				end = cell.OriginCol + cell.ColSpan
			}
		}
	}
	return end
}
