package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/hris-service/internal/domain"
)

// notifyingRepository publishes a change after each successful write.
type notifyingRepository[T domain.Document] struct {
	Repository[T]
	collection string
	notifier   ChangeNotifier
	logger     *zap.Logger
}

func notifying[T domain.Document](repo Repository[T], collection string, notifier ChangeNotifier, logger *zap.Logger) Repository[T] {
	if notifier == nil {
		return repo
	}
	return &notifyingRepository[T]{Repository: repo, collection: collection, notifier: notifier, logger: logger}
}

func (n *notifyingRepository[T]) Create(ctx context.Context, record T) (T, error) {
	created, err := n.Repository.Create(ctx, record)
	if err == nil {
		n.publish(ctx, created.Metadata().CompanyID)
	}
	return created, err
}

func (n *notifyingRepository[T]) Update(ctx context.Context, id string, patch Patch) (T, error) {
	updated, err := n.Repository.Update(ctx, id, patch)
	if err == nil {
		n.publish(ctx, updated.Metadata().CompanyID)
	}
	return updated, err
}

func (n *notifyingRepository[T]) Delete(ctx context.Context, id string) bool {
	var companyID string
	if existing, err := n.Repository.Get(ctx, id); err == nil {
		companyID = existing.Metadata().CompanyID
	}
	if !n.Repository.Delete(ctx, id) {
		return false
	}
	n.publish(ctx, companyID)
	return true
}

func (n *notifyingRepository[T]) publish(ctx context.Context, companyID string) {
	if err := n.notifier.Notify(ctx, n.collection, companyID); err != nil {
		n.logger.Warn("change notification failed", zap.String("collection", n.collection), zap.Error(err))
	}
}
