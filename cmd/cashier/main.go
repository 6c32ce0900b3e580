// cashier muestra en la terminal los pedidos nuevos a medida que llegan (panel de caja).
//
// Uso: go run ./cmd/cashier [-since 2h]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/application/orders"
	"github.com/zone-laptop/zone-store/internal/infrastructure/postgres"
	"github.com/zone-laptop/zone-store/pkg/config"
	"github.com/zone-laptop/zone-store/pkg/logger"
)

func main() {
	since := flag.Duration("since", 12*time.Hour, "mostrar también los pedidos de este periodo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: cfg.App.Name + "-cashier"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orderUC := orders.NewOrderUseCase(postgres.NewOrderRepository(pool), cfg.DB.OpTimeout)
	watcher := orders.NewWatcher(orderUC, cfg.Orders.PollInterval, time.Now().Add(-*since))

	log.Info().Dur("interval", cfg.Orders.PollInterval).Msg("esperando pedidos")
	err = watcher.Run(ctx, printOrder)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("watcher detenido")
		os.Exit(1)
	}
}

func printOrder(o dto.OrderResponse) {
	names := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		names = append(names, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	ref := ""
	if o.PaymentReference != "" {
		ref = " ref " + o.PaymentReference
	}
	fmt.Printf("%s  %-8s  %-10s  %s (%s)  $%s  %s%s\n  %s\n",
		o.CreatedAt.Local().Format("02/01 15:04"),
		o.ID[:8], o.Status, o.CustomerName, o.CustomerIDNumber,
		o.Total.StringFixed(2), o.PaymentMethod, ref,
		strings.Join(names, ", "),
	)
}
