package list

import (
	"context"
	"sync"
)

// ConfirmGate пропускает удаление только после явного подтверждения.
// Одновременно может ожидать подтверждения не более одной цели.
type ConfirmGate struct {
	mu      sync.Mutex
	target  int64
	pending bool
}

// RequestDelete запоминает цель удаления и открывает запрос подтверждения.
// Повторный вызов замещает предыдущую цель.
func (g *ConfirmGate) RequestDelete(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.target = id
	g.pending = true
}

// Pending возвращает ожидающую подтверждения цель, если она есть.
func (g *ConfirmGate) Pending() (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target, g.pending
}

// Confirm вызывает del для записанной цели и сбрасывает ее независимо от
// исхода. Без предшествующего RequestDelete вызов не делает ничего.
func (g *ConfirmGate) Confirm(ctx context.Context, del func(ctx context.Context, id int64) error) error {
	g.mu.Lock()
	if !g.pending {
		g.mu.Unlock()
		return nil
	}
	id := g.target
	g.pending = false
	g.target = 0
	g.mu.Unlock()

	return del(ctx, id)
}

// Cancel сбрасывает ожидающую цель без побочных эффектов.
func (g *ConfirmGate) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = false
	g.target = 0
}
