package actgrid

import "errors"

// Таксономия отказов: все проверки выполняются до начала мутации, частичных
// изменений не бывает. Конкретное нарушение описывается обёрткой
// fmt.Errorf("%w: ...") над одним из базовых значений.
var (
	// ErrSelectionCount — неподходящее число выбранных ячеек для действия.
	ErrSelectionCount = errors.New("неверное выделение")
	// ErrStructural — действие нарушило бы структуру таблицы.
	ErrStructural = errors.New("нарушение структуры таблицы")
	// ErrProtected — таблица защищена от этого действия.
	ErrProtected = errors.New("таблица защищена")
	// ErrHeaderRestricted — действие запрещено для строки заголовка.
	ErrHeaderRestricted = errors.New("строка заголовка")
)
