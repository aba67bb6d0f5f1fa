package services

import (
	"context"
	"errors"
	"fmt"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/notify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ----- Order log actions -----

func (s *OrderService) Complete(ctx context.Context, sess checkout.Session, orderID uint) (*entity.Order, error) {
	return s.transition(ctx, sess, orderID, entity.OrderPending, entity.OrderComplete)
}

func (s *OrderService) Cancel(ctx context.Context, sess checkout.Session, orderID uint) (*entity.Order, error) {
	return s.transition(ctx, sess, orderID, entity.OrderPending, entity.OrderCancelled)
}

func (s *OrderService) transition(ctx context.Context, sess checkout.Session, orderID uint, from, to string) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInvalidOrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.Status = to

	action, event := entity.ActionCompleteOrder, notify.OrderCompleted
	if to == entity.OrderCancelled {
		action, event = entity.ActionCancelOrder, notify.OrderCancelled
	}
	s.Audit.Try(ctx, sess, action, fmt.Sprintf("Marked order %s as %s", o.ReceiptID, to), orderLogPage)
	if err := s.Events.Publish(ctx, notify.NewEvent(event, OrderEvent(o))); err != nil {
		zap.L().Warn("publish order event failed", zap.String("receiptId", o.ReceiptID), zap.Error(err))
	}
	return o, nil
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
