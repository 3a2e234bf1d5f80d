package service

import (
	"context"

	"juan-note/internal/contextutil"
	"juan-note/internal/events"
	"juan-note/internal/storage"
)

// BulkService applies one change to many notes. Batches are best effort:
// per-note failures are counted and listed, never rolled back.
type BulkService interface {
	BulkDelete(ctx context.Context, req BulkDeleteRequest) (BulkOperationResponse, error)
	BulkUpdatePriority(ctx context.Context, req BulkUpdatePriorityRequest) (BulkOperationResponse, error)
	BulkUpdateDone(ctx context.Context, req BulkUpdateDoneRequest) (BulkOperationResponse, error)
	BulkUpdateState(ctx context.Context, req BulkUpdateStateRequest) (BulkOperationResponse, error)
	BulkUpdateOrder(ctx context.Context, req BulkUpdateOrderRequest) (BulkOperationResponse, error)
}

type bulkService struct {
	bulk   BulkStore
	events EventPublisher
}

// NewBulkService creates a new BulkService. publisher may be nil.
func NewBulkService(bulk BulkStore, publisher EventPublisher) BulkService {
	return &bulkService{
		bulk:   bulk,
		events: publisherOrNop(publisher),
	}
}

func (s *bulkService) BulkDelete(ctx context.Context, req BulkDeleteRequest) (BulkOperationResponse, error) {
	return s.run(ctx, "delete", events.NoteDeleted, req.NoteIDs, func() (storage.BulkResult, error) {
		return s.bulk.Delete(ctx, req.NoteIDs)
	})
}

func (s *bulkService) BulkUpdatePriority(ctx context.Context, req BulkUpdatePriorityRequest) (BulkOperationResponse, error) {
	return s.run(ctx, "priority", events.NoteUpdated, req.NoteIDs, func() (storage.BulkResult, error) {
		return s.bulk.SetPriority(ctx, req.NoteIDs, req.Priority)
	})
}

func (s *bulkService) BulkUpdateDone(ctx context.Context, req BulkUpdateDoneRequest) (BulkOperationResponse, error) {
	return s.run(ctx, "done", events.NoteUpdated, req.NoteIDs, func() (storage.BulkResult, error) {
		return s.bulk.SetDone(ctx, req.NoteIDs, req.Done)
	})
}

func (s *bulkService) BulkUpdateState(ctx context.Context, req BulkUpdateStateRequest) (BulkOperationResponse, error) {
	return s.run(ctx, "state", events.NoteUpdated, req.NoteIDs, func() (storage.BulkResult, error) {
		return s.bulk.SetState(ctx, req.NoteIDs, req.StateID)
	})
}

func (s *bulkService) BulkUpdateOrder(ctx context.Context, req BulkUpdateOrderRequest) (BulkOperationResponse, error) {
	return s.run(ctx, "order", events.NoteUpdated, req.NoteIDs, func() (storage.BulkResult, error) {
		return s.bulk.SetOrder(ctx, req.NoteIDs, req.Orders)
	})
}

func (s *bulkService) run(ctx context.Context, op string, change events.ChangeType, ids []int64, apply func() (storage.BulkResult, error)) (BulkOperationResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(ids) == 0 {
		return BulkOperationResponse{Success: true}, nil
	}

	res, err := apply()
	if err != nil {
		logger.ErrorContext(ctx, "bulk operation failed", "op", op, "error", err)
		return BulkOperationResponse{}, WrapError(err, "failed to run bulk "+op)
	}

	if res.Successful > 0 {
		s.events.Publish(events.NoteChange{Type: change, NoteIDs: ids})
	}
	if res.Failed > 0 {
		logger.WarnContext(ctx, "bulk operation partially failed", "op", op, "successful", res.Successful, "failed", res.Failed)
	}

	return BulkOperationResponse{
		Success:         true,
		SuccessfulCount: res.Successful,
		FailedCount:     res.Failed,
		Errors:          res.Errors,
	}, nil
}
