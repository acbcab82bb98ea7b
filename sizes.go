package actgrid

import (
	"fmt"
	"sync"
	"time"
)

// Слой размеров: стилевые метаданные ячеек (ширина/высота и правила переноса)
// хранятся отдельно от матрицы, по ключу (таблица, строка, колонка). Слой не
// входит в набор структурных инвариантов, но обязан переначисляться после
// каждой структурной мутации колонок — старые ключи перестают соответствовать
// логическим колонкам.

const (
	// DefaultMinWidth/DefaultMinHeight — минимумы для ячеек без записи.
	DefaultMinWidth  = "80px"
	DefaultMinHeight = "28px"
	// DefaultFlushDelay — задержка отложенного сброса изменений размеров.
	DefaultFlushDelay = 500 * time.Millisecond
)

// CellStyle — размерные свойства одной ячейки в терминах CSS-значений.
type CellStyle struct {
	Width        string `json:"width,omitempty"`
	Height       string `json:"height,omitempty"`
	MinWidth     string `json:"minWidth,omitempty"`
	MinHeight    string `json:"minHeight,omitempty"`
	WordBreak    string `json:"wordBreak,omitempty"`
	OverflowWrap string `json:"overflowWrap,omitempty"`
}

func defaultStyle() CellStyle {
	return CellStyle{
		MinWidth:     DefaultMinWidth,
		MinHeight:    DefaultMinHeight,
		WordBreak:    "break-word",
		OverflowWrap: "anywhere",
	}
}

// SizeStore хранит размеры ячеек по таблицам и сбрасывает изменения наружу
// с дебаунсом: одиночный перезапускаемый таймер, не очередь.
type SizeStore struct {
	mu      sync.Mutex
	byTable map[string]map[CellRef]CellStyle
	dirty   map[string]struct{}
	delay   time.Duration
	timer   *time.Timer
	onFlush func(tableID string, styles map[CellRef]CellStyle)
}

// NewSizeStore создаёт хранилище размеров. onFlush (может быть nil)
// вызывается после задержки delay для каждой изменённой таблицы.
func NewSizeStore(delay time.Duration, onFlush func(string, map[CellRef]CellStyle)) *SizeStore {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	return &SizeStore{
		byTable: map[string]map[CellRef]CellStyle{},
		dirty:   map[string]struct{}{},
		delay:   delay,
		onFlush: onFlush,
	}
}

// Capture запоминает текущие размеры ячейки (снятые рендерером).
func (s *SizeStore) Capture(tableID string, ref CellRef, st CellStyle) {
	s.mu.Lock()
	m, ok := s.byTable[tableID]
	if !ok {
		m = map[CellRef]CellStyle{}
		s.byTable[tableID] = m
	}
	m[ref] = st
	s.markDirtyLocked(tableID)
	s.mu.Unlock()
}

// Style возвращает записанные размеры ячейки либо минимумы по умолчанию.
func (s *SizeStore) Style(tableID string, ref CellRef) CellStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.byTable[tableID]; ok {
		if st, ok := m[ref]; ok {
			return st
		}
	}
	return defaultStyle()
}

// Restore возвращает копию всей карты размеров таблицы для повторного
// применения после перерисовки.
func (s *SizeStore) Restore(tableID string) map[CellRef]CellStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[CellRef]CellStyle{}
	for ref, st := range s.byTable[tableID] {
		out[ref] = st
	}
	return out
}

// Redistribute сбрасывает карту размеров таблицы и назначает колонкам равные
// процентные ширины (100/numCols, умноженные на ColSpan ячейки). Прежняя
// пиксельная настройка намеренно не переживает смену числа колонок.
func (s *SizeStore) Redistribute(t *Table) {
	if t == nil || t.Grid == nil || t.Grid.NumCols() == 0 {
		return
	}
	pct := 100.0 / float64(t.Grid.NumCols())
	m := map[CellRef]CellStyle{}
	for r := 0; r < t.Grid.NumRows(); r++ {
		for c := 0; c < t.Grid.NumCols(); c++ {
			cell := &t.Grid.Cells[r][c]
			if cell.IsSpanned {
				continue
			}
			st := defaultStyle()
			st.Width = fmt.Sprintf("%.4f%%", pct*float64(cell.ColSpan))
			m[CellRef{Row: r, Col: c}] = st
		}
	}
	s.mu.Lock()
	s.byTable[t.ID] = m
	s.markDirtyLocked(t.ID)
	s.mu.Unlock()
}

// Drop удаляет все размеры таблицы (вызывается при удалении таблицы).
func (s *SizeStore) Drop(tableID string) {
	s.mu.Lock()
	delete(s.byTable, tableID)
	delete(s.dirty, tableID)
	s.mu.Unlock()
}

func (s *SizeStore) markDirtyLocked(tableID string) {
	s.dirty[tableID] = struct{}{}
	if s.onFlush == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.Flush)
}

// Flush немедленно сбрасывает накопленные изменения (и отменяет таймер).
func (s *SizeStore) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	type pending struct {
		id     string
		styles map[CellRef]CellStyle
	}
	var out []pending
	for id := range s.dirty {
		cp := map[CellRef]CellStyle{}
		for ref, st := range s.byTable[id] {
			cp[ref] = st
		}
		out = append(out, pending{id: id, styles: cp})
	}
	s.dirty = map[string]struct{}{}
	cb := s.onFlush
	s.mu.Unlock()
	if cb == nil {
		return
	}
	for _, p := range out {
		cb(p.id, p.styles)
	}
}
