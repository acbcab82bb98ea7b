package actgrid

import (
	"fmt"
	"strings"
)

// Объединение и разъединение ячеек. Объединять можно только сплошную
// прямоугольную область ещё не объединённых ячеек одного типа (заголовок
// либо данные); содержимое склеивается через пробел в якорную ячейку.

// MergeCells объединяет выделенную прямоугольную область в одну ячейку.
// Валидация целиком предшествует мутации: при ошибке сетка не меняется.
func MergeCells(g *Grid, sel []CellRef) error {
	if len(sel) < 2 {
		return fmt.Errorf("%w: для объединения выберите минимум две ячейки", ErrSelectionCount)
	}
	set := make(map[CellRef]struct{}, len(sel))
	minRow, maxRow := g.NumRows(), -1
	minCol, maxCol := g.NumCols(), -1
	for _, ref := range sel {
		if !g.inBounds(ref) {
			return fmt.Errorf("%w: ячейка (%d,%d) вне границ сетки", ErrStructural, ref.Row, ref.Col)
		}
		cell := g.Cell(ref.Row, ref.Col)
		if cell.IsSpanned || cell.RowSpan > 1 || cell.ColSpan > 1 {
			return fmt.Errorf("%w: нельзя объединять уже объединённые ячейки — сначала разъедините их", ErrStructural)
		}
		set[ref] = struct{}{}
		if ref.Row < minRow {
			minRow = ref.Row
		}
		if ref.Row > maxRow {
			maxRow = ref.Row
		}
		if ref.Col < minCol {
			minCol = ref.Col
		}
		if ref.Col > maxCol {
			maxCol = ref.Col
		}
	}
	height := maxRow - minRow + 1
	width := maxCol - minCol + 1
	if len(set) != height*width {
		return fmt.Errorf("%w: объединять можно только сплошную прямоугольную область", ErrStructural)
	}
	hasHeader, hasData := false, false
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if _, ok := set[CellRef{Row: r, Col: c}]; !ok {
				return fmt.Errorf("%w: объединять можно только сплошную прямоугольную область", ErrStructural)
			}
			if g.Cells[r][c].IsHeader {
				hasHeader = true
			} else {
				hasData = true
			}
		}
	}
	if hasHeader && hasData {
		return fmt.Errorf("%w: нельзя объединять ячейки заголовка с ячейками данных", ErrStructural)
	}

	// содержимое области склеивается в якорь, пустые ячейки пропускаются
	var parts []string
	for r := minRow; r <= maxRow; r++ {
		for c := minCol; c <= maxCol; c++ {
			if s := g.Cells[r][c].Content; strings.TrimSpace(s) != "" {
				parts = append(parts, s)
			}
		}
	}
	origin := &g.Cells[minRow][minCol]
	origin.Content = strings.Join(parts, " ")
	origin.RowSpan = height
	origin.ColSpan = width
	g.normalize()
	return nil
}

// UnmergeCell разбирает объединение, якорем которого является указанная
// ячейка. Накрытые слоты снова становятся пустыми ячейками данных, якорь
// сохраняет содержимое. Для необъединённой ячейки — намеренный no-op
// (возвращает false без ошибки).
func UnmergeCell(g *Grid, ref CellRef) (bool, error) {
	if !g.inBounds(ref) {
		return false, fmt.Errorf("%w: ячейка (%d,%d) вне границ сетки", ErrStructural, ref.Row, ref.Col)
	}
	cell := g.Cell(ref.Row, ref.Col)
	if cell.IsSpanned || (cell.RowSpan <= 1 && cell.ColSpan <= 1) {
		return false, nil
	}
	cell.RowSpan = 1
	cell.ColSpan = 1
	g.normalize()
	return true, nil
}
