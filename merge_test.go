package actgrid_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	actgrid "github.com/mr-Dees/Act-Constructor-sub001"
)

// MergeSuite — сьют тестов объединения и разъединения ячеек.
type MergeSuite struct {
	suite.Suite
}

func TestMergeSuite(t *testing.T) {
	suite.Run(t, new(MergeSuite))
}

// Спецификация §8: сетка 2×2 [[H0,H1],[D0,D1]]; объединение D0,D1 даёт одну
// ячейку с содержимым "D0 D1" и colSpan=2; разъединение возвращает две
// независимые ячейки данных, якорь сохраняет склеенное содержимое.
func (s *MergeSuite) TestMergeThenUnmergeDataRow() {
	g := actgrid.NewGrid(2, 2, 1)
	g.Cell(0, 0).Content = "H0"
	g.Cell(0, 1).Content = "H1"
	g.Cell(1, 0).Content = "D0"
	g.Cell(1, 1).Content = "D1"

	s.Require().NoError(actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 1, Col: 0}, {Row: 1, Col: 1},
	}))
	origin := g.Cell(1, 0)
	s.Assert().Equal("D0 D1", origin.Content)
	s.Assert().Equal(2, origin.ColSpan)
	s.Assert().Equal(1, origin.RowSpan)
	covered := g.Cell(1, 1)
	s.Require().True(covered.IsSpanned)
	s.Require().NotNil(covered.SpanOrigin)
	s.Assert().Equal(actgrid.CellRef{Row: 1, Col: 0}, *covered.SpanOrigin)
	s.Require().NoError(g.Validate())

	changed, err := actgrid.UnmergeCell(g, actgrid.CellRef{Row: 1, Col: 0})
	s.Require().NoError(err)
	s.Require().True(changed)
	s.Assert().Equal("D0 D1", g.Cell(1, 0).Content, "якорь сохраняет содержимое")
	s.Assert().Equal(1, g.Cell(1, 0).ColSpan)
	freed := g.Cell(1, 1)
	s.Assert().False(freed.IsSpanned)
	s.Assert().Equal("", freed.Content, "освобождённый слот пуст")
	s.Assert().False(freed.IsHeader)
	s.Require().NoError(g.Validate())
}

// Г-образное выделение из трёх ячеек отклоняется без мутации.
func (s *MergeSuite) TestMergeRejectsNonRectangle() {
	g := actgrid.NewGrid(2, 2, 0)
	g.Cell(0, 0).Content = "a"
	err := actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0},
	})
	s.Require().ErrorIs(err, actgrid.ErrStructural)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			cell := g.Cell(r, c)
			s.Assert().False(cell.IsSpanned)
			s.Assert().Equal(1, cell.ColSpan)
			s.Assert().Equal(1, cell.RowSpan)
		}
	}
	s.Assert().Equal("a", g.Cell(0, 0).Content, "содержимое не тронуто")
}

func (s *MergeSuite) TestMergeRejectsHeaderDataMix() {
	g := actgrid.NewGrid(2, 2, 1)
	err := actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 0}, {Row: 1, Col: 0},
	})
	s.Require().ErrorIs(err, actgrid.ErrStructural)

	// две заголовочные ячейки объединяются
	s.Require().NoError(actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
	}))
	s.Assert().True(g.Cell(0, 0).IsHeader)
	s.Require().NoError(g.Validate())
}

func (s *MergeSuite) TestMergeRejectsAlreadyMerged() {
	g := actgrid.NewGrid(3, 3, 0)
	s.Require().NoError(actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 0}, {Row: 0, Col: 1},
	}))
	// выделение включает якорь существующего объединения
	err := actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 0}, {Row: 1, Col: 0},
	})
	s.Require().ErrorIs(err, actgrid.ErrStructural)
	// и накрытый слот тоже
	err = actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 1}, {Row: 1, Col: 1},
	})
	s.Require().ErrorIs(err, actgrid.ErrStructural)
}

func (s *MergeSuite) TestMergeSkipsBlankContent() {
	g := actgrid.NewGrid(2, 2, 0)
	g.Cell(0, 0).Content = "Нарушение 1"
	g.Cell(0, 1).Content = "   "
	g.Cell(1, 0).Content = ""
	g.Cell(1, 1).Content = "Нарушение 2"
	s.Require().NoError(actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}))
	s.Assert().Equal("Нарушение 1 Нарушение 2", g.Cell(0, 0).Content)
	s.Assert().Equal(2, g.Cell(0, 0).RowSpan)
	s.Assert().Equal(2, g.Cell(0, 0).ColSpan)
	s.Require().NoError(g.Validate())
}

func (s *MergeSuite) TestMergeRequiresTwoCells() {
	g := actgrid.NewGrid(2, 2, 0)
	err := actgrid.MergeCells(g, []actgrid.CellRef{{Row: 0, Col: 0}})
	s.Require().ErrorIs(err, actgrid.ErrSelectionCount)
}

// Разъединение необъединённой ячейки — намеренный no-op, а не ошибка.
func (s *MergeSuite) TestUnmergeNoopOnPlainCell() {
	g := actgrid.NewGrid(2, 2, 0)
	changed, err := actgrid.UnmergeCell(g, actgrid.CellRef{Row: 0, Col: 0})
	s.Require().NoError(err)
	s.Assert().False(changed)
}

// Форма восстанавливается после merge+unmerge, содержимое — нет.
func (s *MergeSuite) TestMergeUnmergeShapeRoundTrip() {
	g := actgrid.NewGrid(3, 3, 0)
	g.Cell(1, 1).Content = "a"
	g.Cell(1, 2).Content = "b"
	g.Cell(2, 1).Content = "c"
	g.Cell(2, 2).Content = "d"
	s.Require().NoError(actgrid.MergeCells(g, []actgrid.CellRef{
		{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 2},
	}))
	_, err := actgrid.UnmergeCell(g, actgrid.CellRef{Row: 1, Col: 1})
	s.Require().NoError(err)

	s.Assert().Equal(3, g.NumRows())
	s.Assert().Equal(3, g.NumCols())
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			s.Assert().False(g.Cell(r, c).IsSpanned)
		}
	}
	s.Assert().Equal("a b c d", g.Cell(1, 1).Content)
	s.Assert().Equal("", g.Cell(2, 2).Content)
	s.Require().NoError(g.Validate())
}
