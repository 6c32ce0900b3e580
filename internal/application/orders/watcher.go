package orders

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zone-laptop/zone-store/internal/application/dto"
)

// Un pedido puede confirmarse después de otro con created_at posterior; cada consulta
// se solapa este margen con la anterior y los ya vistos se descartan por id.
const watchOverlap = time.Minute

// OrderLister lo que el Watcher necesita para refrescar (OrderUseCase lo implementa).
type OrderLister interface {
	List(ctx context.Context, in dto.ListOrdersQuery) ([]dto.OrderResponse, error)
}

// Watcher consulta periódicamente los pedidos nuevos para el panel de caja.
type Watcher struct {
	lister   OrderLister
	interval time.Duration
	since    time.Time
	seen     map[string]time.Time
}

// NewWatcher crea un watcher que reporta pedidos creados después de since.
func NewWatcher(lister OrderLister, interval time.Duration, since time.Time) *Watcher {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Watcher{lister: lister, interval: interval, since: since, seen: map[string]time.Time{}}
}

// Run consulta de inmediato y luego cada intervalo, entregando a onNew cada pedido nuevo
// del más antiguo al más reciente. Un error de consulta se registra y se reintenta en el
// siguiente ciclo. Termina con ctx.Err() cuando se cancela el contexto.
func (w *Watcher) Run(ctx context.Context, onNew func(dto.OrderResponse)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.poll(ctx, onNew)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context, onNew func(dto.OrderResponse)) {
	query := dto.ListOrdersQuery{Limit: maxListLimit}
	if !w.since.IsZero() {
		query.Since = w.since.Add(-watchOverlap)
	}
	list, err := w.lister.List(ctx, query)
	if err != nil {
		if ctx.Err() == nil {
			log.Error().Err(err).Msg("watcher: no se pudieron consultar los pedidos")
		}
		return
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	for _, o := range list {
		if _, ok := w.seen[o.ID]; ok {
			continue
		}
		w.seen[o.ID] = o.CreatedAt
		if o.CreatedAt.After(w.since) {
			w.since = o.CreatedAt
		}
		onNew(o)
	}

	cutoff := w.since.Add(-2 * watchOverlap)
	for id, at := range w.seen {
		if at.Before(cutoff) {
			delete(w.seen, id)
		}
	}
}
