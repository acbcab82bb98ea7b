package actgrid

import "fmt"

// Шлюз команд: единая точка входа для действий над таблицей. Проверяет
// фиксированную политику предусловий (защита таблицы, размер выделения) и
// передаёт управление конкретному оператору. Никакая проверка не выполняется
// после начала мутации.

// Action — идентификатор действия над таблицей.
type Action string

const (
	ActionMergeCells     Action = "merge-cells"
	ActionUnmergeCell    Action = "unmerge-cell"
	ActionInsertRowAbove Action = "insert-row-above"
	ActionInsertRowBelow Action = "insert-row-below"
	ActionInsertColLeft  Action = "insert-col-left"
	ActionInsertColRight Action = "insert-col-right"
	ActionDeleteRow      Action = "delete-row"
	ActionDeleteCol      Action = "delete-col"
)

// SelectedCell — выбранная ячейка: координаты плюс таблица-владелец.
// Значение формируется слоем UI; движок никогда не читает дерево рендера.
type SelectedCell struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	TableID string `json:"tableId"`
}

// Selection — набор выбранных ячеек одной таблицы.
type Selection []SelectedCell

// политика действия: блокировка защищённой таблицы и требования к выделению.
// Операции со строками намеренно НЕ блокируются флагом Protected — защита
// распространяется только на объединения и колонки.
type actionPolicy struct {
	blockedWhenProtected bool
	minCells             int
	maxCells             int // 0 — без ограничения сверху
}

var policies = map[Action]actionPolicy{
	ActionMergeCells:     {blockedWhenProtected: true, minCells: 2},
	ActionUnmergeCell:    {blockedWhenProtected: true, minCells: 1, maxCells: 1},
	ActionInsertRowAbove: {minCells: 1, maxCells: 1},
	ActionInsertRowBelow: {minCells: 1, maxCells: 1},
	ActionInsertColLeft:  {blockedWhenProtected: true, minCells: 1, maxCells: 1},
	ActionInsertColRight: {blockedWhenProtected: true, minCells: 1, maxCells: 1},
	ActionDeleteRow:      {minCells: 1, maxCells: 1},
	ActionDeleteCol:      {blockedWhenProtected: true, minCells: 1, maxCells: 1},
}

// Dispatch валидирует выделение и выполняет действие над таблицей из реестра.
// Возвращает сообщение для пользователя; при ошибке сетка гарантированно не
// изменена. После успешного действия вызывающая сторона сбрасывает выделение
// и перерисовывает таблицу по модели.
func Dispatch(reg *Registry, sel Selection, action Action) (string, error) {
	pol, ok := policies[action]
	if !ok {
		return "", fmt.Errorf("%w: неизвестное действие %q", ErrStructural, action)
	}
	if len(sel) == 0 {
		return "", fmt.Errorf("%w: не выбрано ни одной ячейки", ErrSelectionCount)
	}
	tableID := sel[0].TableID
	for _, sc := range sel[1:] {
		if sc.TableID != tableID {
			return "", fmt.Errorf("%w: ячейки принадлежат разным таблицам", ErrSelectionCount)
		}
	}
	t, ok := reg.Get(tableID)
	if !ok {
		return "", fmt.Errorf("%w: таблица %q не найдена", ErrStructural, tableID)
	}
	if t.Protected && pol.blockedWhenProtected {
		return "", fmt.Errorf("%w: действие %q недоступно", ErrProtected, action)
	}
	if len(sel) < pol.minCells {
		return "", fmt.Errorf("%w: для действия %q нужно минимум %d ячеек", ErrSelectionCount, action, pol.minCells)
	}
	if pol.maxCells > 0 && len(sel) > pol.maxCells {
		return "", fmt.Errorf("%w: для действия %q выберите ровно одну ячейку", ErrSelectionCount, action)
	}
	for _, sc := range sel {
		if !t.Grid.inBounds(CellRef{Row: sc.Row, Col: sc.Col}) {
			return "", fmt.Errorf("%w: ячейка (%d,%d) вне границ сетки", ErrStructural, sc.Row, sc.Col)
		}
	}

	target := CellRef{Row: sel[0].Row, Col: sel[0].Col}
	switch action {
	case ActionMergeCells:
		refs := make([]CellRef, len(sel))
		for i, sc := range sel {
			refs[i] = CellRef{Row: sc.Row, Col: sc.Col}
		}
		if err := MergeCells(t.Grid, refs); err != nil {
			return "", err
		}
		return "Ячейки объединены", nil
	case ActionUnmergeCell:
		changed, err := UnmergeCell(t.Grid, target)
		if err != nil {
			return "", err
		}
		if !changed {
			return "Ячейка не объединена", nil
		}
		return "Объединение снято", nil
	case ActionInsertRowAbove:
		if _, err := InsertRowAbove(t.Grid, target.Row); err != nil {
			return "", err
		}
		return "Строка добавлена выше", nil
	case ActionInsertRowBelow:
		if _, err := InsertRowBelow(t.Grid, target.Row); err != nil {
			return "", err
		}
		return "Строка добавлена ниже", nil
	case ActionInsertColLeft:
		if _, err := InsertColumnLeft(t.Grid, target.Col); err != nil {
			return "", err
		}
		reg.Sizes.Redistribute(t)
		return "Колонка добавлена слева", nil
	case ActionInsertColRight:
		if _, err := InsertColumnRight(t.Grid, target.Col); err != nil {
			return "", err
		}
		reg.Sizes.Redistribute(t)
		return "Колонка добавлена справа", nil
	case ActionDeleteRow:
		if err := DeleteRow(t.Grid, target.Row); err != nil {
			return "", err
		}
		return "Строка удалена", nil
	case ActionDeleteCol:
		if err := DeleteColumn(t.Grid, target.Col); err != nil {
			return "", err
		}
		reg.Sizes.Redistribute(t)
		return "Колонка удалена", nil
	}
	return "", fmt.Errorf("%w: неизвестное действие %q", ErrStructural, action)
}
