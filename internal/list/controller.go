// Package list реализует универсальный контроллер коллекции сущностей:
// загрузку, создание, обновление, удаление и серверную сортировку, а также
// подтверждение удаления и дебаунс живого поиска. Один и тот же контроллер
// обслуживает экраны заметок и пользователей.
package list

import (
	"context"
	"sync"

	"github.com/maynagashev/passman/internal/models"
)

// Entity — сущность с числовым идентификатором.
// ID 0 зарезервирован за еще не сохраненной сущностью.
type Entity interface {
	EntityID() int64
}

// Ops привязывает контроллер к конкретному ресурсу API.
// FetchSorted и Merge опциональны: без FetchSorted сортировка недоступна,
// без Merge обновленный элемент замещается целиком.
type Ops[T Entity] struct {
	Fetch       func(ctx context.Context) ([]T, error)
	FetchSorted func(ctx context.Context, order models.SortOrder) ([]T, error)
	Create      func(ctx context.Context, item T) error
	Update      func(ctx context.Context, item T) error
	Delete      func(ctx context.Context, id int64) error
	// Merge накладывает изменяемые поля patch на current при оптимистичном
	// обновлении. Серверные поля (id, created_at) берутся из current.
	Merge func(current, patch T) T
}

// Controller управляет состоянием списка сущностей.
// Счетчик поколений gen гарантирует, что результат устаревшей загрузки
// не перезапишет более позднюю: применяется только актуальное поколение.
type Controller[T Entity] struct {
	mu        sync.Mutex
	ops       Ops[T]
	items     []T
	loading   bool
	errMsg    string
	gen       uint64
	sortOrder models.SortOrder
}

// NewController создает контроллер для заданного набора операций.
func NewController[T Entity](ops Ops[T]) *Controller[T] {
	return &Controller[T]{ops: ops, sortOrder: models.SortDesc}
}

// Items возвращает копию текущей последовательности элементов.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Loading сообщает, выполняется ли загрузка списка.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err возвращает сообщение последней ошибки загрузки (пустая строка — нет).
func (c *Controller[T]) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// SortOrder возвращает текущее направление серверной сортировки.
func (c *Controller[T]) SortOrder() models.SortOrder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortOrder
}

// beginFetch открывает новое поколение загрузки и возвращает его номер.
func (c *Controller[T]) beginFetch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.loading = true
	return c.gen
}

// finishFetch применяет результат загрузки поколения gen.
// Результат устаревшего поколения отбрасывается. При ошибке прежние
// элементы сохраняются, чтобы список не мигал пустым при сбое.
func (c *Controller[T]) finishFetch(gen uint64, items []T, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return true
	}
	c.items = items
	c.errMsg = ""
	return true
}

// Refresh перечитывает список с сервера и целиком замещает элементы,
// сохраняя серверный порядок.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	gen := c.beginFetch()
	items, err := c.ops.Fetch(ctx)
	c.finishFetch(gen, items, err)
	return err
}

// Submit сохраняет сущность: несохраненная (ID 0) уходит в create,
// существующая (ID > 0) — в update. Других вариантов диспетчеризации нет.
func (c *Controller[T]) Submit(ctx context.Context, item T) error {
	if item.EntityID() > models.NewEntityID {
		return c.update(ctx, item)
	}
	return c.create(ctx, item)
}

// create создает сущность и перечитывает список целиком: порядок и
// вычисляемые сервером поля известны только серверу.
func (c *Controller[T]) create(ctx context.Context, item T) error {
	if err := c.ops.Create(ctx, item); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// update обновляет сущность и накладывает изменения на локальный элемент
// без повторной загрузки, чтобы список не перестраивался.
func (c *Controller[T]) update(ctx context.Context, item T) error {
	if err := c.ops.Update(ctx, item); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].EntityID() == item.EntityID() {
			if c.ops.Merge != nil {
				c.items[i] = c.ops.Merge(c.items[i], item)
			} else {
				c.items[i] = item
			}
			break
		}
	}
	return nil
}

// Delete удаляет сущность на сервере и убирает первый элемент с таким ID
// из локального списка. При ошибке список не меняется.
func (c *Controller[T]) Delete(ctx context.Context, id int64) error {
	if err := c.ops.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return nil
}

// ToggleSort запрашивает у сервера противоположное направление сортировки
// и замещает список отсортированной последовательностью. Клиент локально не
// сортирует. Направление фиксируется только после успешной загрузки, чтобы
// при сбое оно не разошлось с отображаемым списком.
func (c *Controller[T]) ToggleSort(ctx context.Context) error {
	if c.ops.FetchSorted == nil {
		return nil
	}

	c.mu.Lock()
	order := c.sortOrder.Toggle()
	c.mu.Unlock()

	gen := c.beginFetch()
	items, err := c.ops.FetchSorted(ctx, order)
	if c.finishFetch(gen, items, err) && err == nil {
		c.mu.Lock()
		c.sortOrder = order
		c.mu.Unlock()
	}
	return err
}
