package list

import (
	"sync"
	"time"
)

// DefaultDebounceWindow — окно тишины живого поиска.
const DefaultDebounceWindow = 500 * time.Millisecond

// Debouncer откладывает реакцию на серию событий до окна тишины.
// Каждое событие взводит новое поколение; готовым считается только
// таймер последнего поколения, остальные отбрасываются.
type Debouncer struct {
	mu     sync.Mutex
	gen    uint64
	window time.Duration
}

// NewDebouncer создает дебаунсер с заданным окном тишины.
// Неположительное окно заменяется значением по умолчанию.
func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{window: window}
}

// Window возвращает окно тишины.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Arm регистрирует новое событие и возвращает номер его поколения.
// Таймеры ранее взведенных поколений при этом становятся устаревшими.
func (d *Debouncer) Arm() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	return d.gen
}

// Ready сообщает, актуально ли еще поколение gen. Сработавший таймер
// устаревшего поколения должен быть проигнорирован.
func (d *Debouncer) Ready(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}
