package actgrid

import "sync"

// Реестр таблиц акта: явное хранилище вместо глобального состояния. Движок
// сам по себе не держит состояния и оперирует только переданной сеткой.

// Table — таблица акта: сетка плюс флаги защиты и удаляемости.
// Protected запрещает объединение ячеек и операции с колонками; операции со
// строками при этом остаются доступными (фиксированное бизнес-правило).
type Table struct {
	ID        string `json:"id"`
	Protected bool   `json:"protected"`
	Deletable bool   `json:"deletable"`
	Grid      *Grid  `json:"grid"`
}

// Registry хранит таблицы по идентификатору и связанное хранилище размеров.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
	Sizes  *SizeStore
}

// NewRegistry создаёт пустой реестр со стандартным дебаунсом размеров.
func NewRegistry() *Registry {
	return &Registry{
		tables: map[string]*Table{},
		Sizes:  NewSizeStore(DefaultFlushDelay, nil),
	}
}

// NewTable создаёт таблицу с полностью заполненной сеткой rows×cols
// (headerRows верхних строк — заголовок), регистрирует её и раздаёт колонкам
// равные ширины.
func (reg *Registry) NewTable(id string, rows, cols, headerRows int) *Table {
	t := &Table{
		ID:        id,
		Deletable: true,
		Grid:      NewGrid(rows, cols, headerRows),
	}
	reg.Add(t)
	reg.Sizes.Redistribute(t)
	return t
}

// Add регистрирует таблицу (существующая с тем же id замещается).
func (reg *Registry) Add(t *Table) {
	reg.mu.Lock()
	reg.tables[t.ID] = t
	reg.mu.Unlock()
}

// Get возвращает таблицу по идентификатору.
func (reg *Registry) Get(id string) (*Table, bool) {
	reg.mu.RLock()
	t, ok := reg.tables[id]
	reg.mu.RUnlock()
	return t, ok
}

// Delete удаляет таблицу вместе с её размерными метаданными.
// Таблицы с Deletable=false не удаляются.
func (reg *Registry) Delete(id string) bool {
	reg.mu.Lock()
	t, ok := reg.tables[id]
	if ok && !t.Deletable {
		reg.mu.Unlock()
		return false
	}
	delete(reg.tables, id)
	reg.mu.Unlock()
	if ok {
		reg.Sizes.Drop(id)
	}
	return ok
}
