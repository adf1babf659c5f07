package memory

import (
	"context"
)

// TxManager транзакции поверх Store
// Транзакция держит мьютекс стора целиком и при ошибке или панике
// откатывает измененные ключи по журналу
type TxManager struct {
	store *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
// Чтения внутри видят согласованное состояние стора
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if owner, ok := ctx.Value(txKey{}).(*Store); ok && owner == m.store {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	m.store.begin()
	committed := false
	defer func() {
		if !committed {
			m.store.rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, m.store)); err != nil {
		return err
	}

	m.store.commit()
	committed = true
	return nil
}
