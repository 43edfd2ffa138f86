package services

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"parts-matching-client/internal/api/dto"
	"parts-matching-client/internal/domain"
	"parts-matching-client/internal/ports"
	"parts-matching-client/internal/refresh"
)

// NotificationFeed is the notification list plus the realtime push and the
// read-marking actions. Unless surfaceErrors is set, failures are logged and
// the feed keeps showing what it last had.
type NotificationFeed struct {
	src           ports.NotificationSource
	surfaceErrors bool
	*refresh.Resource[[]domain.NotificationView]
}

func NewNotificationFeed(src ports.NotificationSource, surfaceErrors bool) *NotificationFeed {
	res := refresh.New(func(ctx context.Context) ([]domain.NotificationView, error) {
		ns, err := src.ListNotifications(ctx)
		if err != nil {
			return nil, fmt.Errorf("notifications: %w", err)
		}
		return ToNotificationViews(ns), nil
	}, refresh.WithName("notifications"), refresh.WithSwallowErrors(!surfaceErrors))

	return &NotificationFeed{src: src, surfaceErrors: surfaceErrors, Resource: res}
}

// HandleEvent prepends a pushed notification. A duplicate id replaces the
// existing entry instead of adding a second row.
func (f *NotificationFeed) HandleEvent(n dto.NotificationDto) {
	if err := n.Validate(); err != nil {
		zap.L().Debug("dropping realtime notification", zap.Error(err))
		return
	}
	v := ToNotificationView(n)

	f.Mutate(func(cur []domain.NotificationView) []domain.NotificationView {
		rest := slices.DeleteFunc(slices.Clone(cur), func(x domain.NotificationView) bool { return x.ID == v.ID })
		return append([]domain.NotificationView{v}, rest...)
	})
}

func (f *NotificationFeed) MarkRead(ctx context.Context, id string) error {
	if err := f.src.MarkNotificationRead(ctx, id); err != nil {
		return f.actionError(fmt.Errorf("mark notification %s read: %w", id, err))
	}
	f.Mutate(func(cur []domain.NotificationView) []domain.NotificationView {
		out := slices.Clone(cur)
		for i := range out {
			if out[i].ID == id {
				out[i].Read = true
			}
		}
		return out
	})
	return nil
}

func (f *NotificationFeed) MarkAllRead(ctx context.Context) error {
	if err := f.src.MarkAllNotificationsRead(ctx); err != nil {
		return f.actionError(fmt.Errorf("mark all notifications read: %w", err))
	}
	f.Mutate(func(cur []domain.NotificationView) []domain.NotificationView {
		out := slices.Clone(cur)
		for i := range out {
			out[i].Read = true
		}
		return out
	})
	return nil
}

func (f *NotificationFeed) Unread() int {
	return UnreadCount(f.Snapshot().Data)
}

func (f *NotificationFeed) actionError(err error) error {
	if f.surfaceErrors {
		return err
	}
	zap.L().Debug("notification action failed (ignored)", zap.Error(err))
	return nil
}

func UnreadCount(ns []domain.NotificationView) int {
	n := 0
	for _, v := range ns {
		if !v.Read {
			n++
		}
	}
	return n
}
