package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/deposito-pro/internal/application/despacho"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// TxRunner debe satisfacer ambos puertos transaccionales.
var _ inventario.TxRunner = (*TxRunner)(nil)
var _ despacho.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es la frontera transaccional del motor de ajustes (ajuste + cascada de kit).
func (r *TxRunner) Run(ctx context.Context, fn func(
	bienRepo repository.BienRepository,
	kitRepo repository.KitRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	bienRepo := NewBienRepository(tx)
	kitRepo := NewKitRepository(tx)
	movRepo := NewMovimientoRepository(tx)

	if err := fn(bienRepo, kitRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDespacho inicia una transacción con los repos que toca un despacho
// (orden + bolsones + despacho). El lote completo se aplica o nada.
func (r *TxRunner) RunDespacho(ctx context.Context, fn func(
	ordenRepo repository.OrdenVentaRepository,
	bolsonRepo repository.BolsonRepository,
	despachoRepo repository.DespachoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ordenRepo := NewOrdenVentaRepository(tx)
	bolsonRepo := NewBolsonRepository(tx)
	despachoRepo := NewDespachoRepository(tx)

	if err := fn(ordenRepo, bolsonRepo, despachoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
