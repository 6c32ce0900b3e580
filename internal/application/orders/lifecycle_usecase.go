package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/order"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// LifecycleUseCase cambios de estado de un pedido desde caja.
type LifecycleUseCase struct {
	txRunner         TxRunner
	cancelSecretHash []byte
	timeout          time.Duration
	now              func() time.Time
}

// NewLifecycleUseCase construye el caso de uso. cancelSecretHash es el hash bcrypt de la clave
// de gerente; vacío rechaza toda cancelación.
func NewLifecycleUseCase(txRunner TxRunner, cancelSecretHash string, timeout time.Duration) *LifecycleUseCase {
	return &LifecycleUseCase{
		txRunner:         txRunner,
		cancelSecretHash: []byte(cancelSecretHash),
		timeout:          timeout,
		now:              time.Now,
	}
}

// TransitionStatus aplica pending -> paid -> delivered o pending|paid -> canceled.
// La fila se bloquea, se valida la transición contra el estado guardado y se registra la auditoría,
// todo en una transacción. Cancelar exige además la clave de gerente.
func (uc *LifecycleUseCase) TransitionStatus(ctx context.Context, in dto.TransitionStatusRequest, actorID string) (*dto.OrderResponse, error) {
	target, ok := order.ParseStatus(in.Status)
	if !ok {
		verr := domain.NewValidationError()
		verr.Add("status", "debe ser paid, delivered o canceled")
		return nil, verr
	}
	if !validOrderID(in.OrderID) {
		return nil, domain.ErrNotFound
	}
	if target == entity.OrderStatusCanceled {
		if err := uc.checkCancelSecret(in.AuthSecret); err != nil {
			log.Ctx(ctx).Warn().Str("order_id", in.OrderID).Str("actor", actorID).Msg("cancelación rechazada: clave inválida")
			return nil, err
		}
	}

	ctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	var updated *entity.Order
	var from string
	err := uc.txRunner.RunLifecycle(ctx, func(orderRepo repository.OrderRepository) error {
		o, err := orderRepo.GetByIDForUpdate(ctx, in.OrderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if err := order.CheckTransition(o.Status, target); err != nil {
			return err
		}
		now := uc.now().UTC()
		applied, err := orderRepo.UpdateStatus(ctx, o.ID, o.Status, target, now)
		if err != nil {
			return err
		}
		if !applied {
			return domain.ErrConflict
		}
		if err := orderRepo.AddStatusEvent(ctx, &entity.OrderStatusEvent{
			ID:         uuid.New().String(),
			OrderID:    o.ID,
			FromStatus: o.Status,
			ToStatus:   target,
			ActorID:    actorID,
			CreatedAt:  now,
		}); err != nil {
			return err
		}
		from = o.Status
		o.Status = target
		o.UpdatedAt = now
		updated = o
		return nil
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrTransient) {
			err = errors.Join(domain.ErrTransient, err)
		}
		switch {
		case errors.Is(err, domain.ErrIllegalTransition), errors.Is(err, domain.ErrNotFound):
		default:
			log.Ctx(ctx).Error().Err(err).Str("order_id", in.OrderID).Str("status", target).Msg("no se pudo cambiar el estado del pedido")
		}
		return nil, err
	}

	log.Ctx(ctx).Info().Str("order_id", updated.ID).Str("from", from).Str("status", target).Str("actor", actorID).Msg("estado del pedido actualizado")
	out := toOrderResponse(updated)
	return &out, nil
}

func (uc *LifecycleUseCase) checkCancelSecret(secret string) error {
	if len(uc.cancelSecretHash) == 0 || secret == "" {
		return domain.ErrInvalidSecret
	}
	if err := bcrypt.CompareHashAndPassword(uc.cancelSecretHash, []byte(secret)); err != nil {
		return domain.ErrInvalidSecret
	}
	return nil
}
