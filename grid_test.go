package actgrid

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestNewGridFullyPopulated(t *testing.T) {
	g := NewGrid(3, 4, 1)
	if g.NumRows() != 3 || g.NumCols() != 4 {
		t.Fatalf("размер %dx%d, ожидалось 3x4", g.NumRows(), g.NumCols())
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			cell := g.Cell(r, c)
			if cell.RowSpan != 1 || cell.ColSpan != 1 || cell.IsSpanned {
				t.Fatalf("слот (%d,%d) не плоский: %+v", r, c, cell)
			}
			if (r == 0) != cell.IsHeader {
				t.Fatalf("слот (%d,%d): isHeader=%v", r, c, cell.IsHeader)
			}
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestHeaderRowIndex(t *testing.T) {
	if got := NewGrid(3, 2, 1).HeaderRowIndex(); got != 0 {
		t.Fatalf("HeaderRowIndex = %d, ожидалось 0", got)
	}
	if got := NewGrid(3, 2, 0).HeaderRowIndex(); got != -1 {
		t.Fatalf("HeaderRowIndex = %d, ожидалось -1", got)
	}
}

func TestHeaderRowViaSpan(t *testing.T) {
	// сложный заголовок: ячейка (0,0) растянута на две строки
	g := NewGrid(4, 2, 1)
	g.Cells[0][0].RowSpan = 2
	g.normalize()
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !g.isHeaderRow(1) {
		t.Fatal("строка 1 накрыта заголовком, но не считается заголовочной")
	}
	if g.isHeaderRow(2) {
		t.Fatal("строка 2 ошибочно считается заголовочной")
	}
}

// Свойство: любая последовательность операций (включая отклонённые) оставляет
// сетку полностью заполненной и согласованной по объединениям.
func TestRandomOpsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewGrid(4, 4, 1)
	for step := 0; step < 600; step++ {
		rows, cols := g.NumRows(), g.NumCols()
		switch op := rng.Intn(7); op {
		case 0:
			if rows < 9 {
				_, _ = InsertRowAbove(g, rng.Intn(rows))
			}
		case 1:
			if rows < 9 {
				_, _ = InsertRowBelow(g, rng.Intn(rows))
			}
		case 2:
			if cols < 9 {
				_, _ = InsertColumnLeft(g, rng.Intn(cols))
			}
		case 3:
			if cols < 9 {
				_, _ = InsertColumnRight(g, rng.Intn(cols))
			}
		case 4:
			_ = DeleteRow(g, rng.Intn(rows))
			if cols > 1 {
				_ = DeleteColumn(g, rng.Intn(cols))
			}
		case 5:
			r1, c1 := rng.Intn(rows), rng.Intn(cols)
			r2 := r1 + rng.Intn(3)
			c2 := c1 + rng.Intn(3)
			if r2 >= rows {
				r2 = rows - 1
			}
			if c2 >= cols {
				c2 = cols - 1
			}
			var refs []CellRef
			for r := r1; r <= r2; r++ {
				for c := c1; c <= c2; c++ {
					refs = append(refs, CellRef{Row: r, Col: c})
				}
			}
			_ = MergeCells(g, refs)
		case 6:
			_, _ = UnmergeCell(g, CellRef{Row: rng.Intn(rows), Col: rng.Intn(cols)})
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("шаг %d: %v\n%s", step, err, dumpGrid(g))
		}
	}
}

func TestNormalizeFreesUncoveredSlots(t *testing.T) {
	g := NewGrid(3, 3, 0)
	mergeRect(t, g, 0, 0, 2, 0)
	// сброс span у якоря освобождает накрытые слоты
	g.Cells[0][0].RowSpan = 1
	g.normalize()
	for r := 1; r <= 2; r++ {
		cell := g.Cell(r, 0)
		if cell.IsSpanned || cell.Content != "" {
			t.Fatalf("слот (%d,0) не освобождён: %+v", r, cell)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

// вспомогательная печать сетки при отладке property-теста
func dumpGrid(g *Grid) string {
	out := ""
	for r := range g.Cells {
		for c := range g.Cells[r] {
			cell := &g.Cells[r][c]
			if cell.IsSpanned {
				out += "[*]"
				continue
			}
			out += fmt.Sprintf("[%dx%d]", cell.RowSpan, cell.ColSpan)
		}
		out += "\n"
	}
	return out
}
