package service

import (
	"context"
	"errors"
	"strings"

	"juan-note/internal/contextutil"
	"juan-note/internal/events"
	"juan-note/internal/storage"
)

// StateService manages the kanban states.
type StateService interface {
	GetAllStates(ctx context.Context) (StatesListResponse, error)
	CreateState(ctx context.Context, req CreateStateRequest) (StateResponse, error)
	UpdateState(ctx context.Context, req UpdateStateRequest) (StateResponse, error)
	// DeleteState removes the state and clears it from every note that referenced it.
	DeleteState(ctx context.Context, id int64) (StateResponse, error)
}

type stateService struct {
	states StateStore
	events EventPublisher
}

// NewStateService creates a new StateService. publisher may be nil.
func NewStateService(states StateStore, publisher EventPublisher) StateService {
	return &stateService{
		states: states,
		events: publisherOrNop(publisher),
	}
}

func (s *stateService) GetAllStates(ctx context.Context) (StatesListResponse, error) {
	states, err := s.states.List(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list states", "error", err)
		return StatesListResponse{}, WrapError(err, "failed to list states")
	}
	if states == nil {
		states = []storage.State{}
	}
	return StatesListResponse{Success: true, Data: states}, nil
}

func (s *stateService) CreateState(ctx context.Context, req CreateStateRequest) (StateResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return StateResponse{}, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	state, err := s.states.Create(ctx, storage.NewState{
		Name:     req.Name,
		Position: req.Position,
		Color:    req.Color,
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to create state", "error", err)
		return StateResponse{}, WrapError(err, "failed to create state")
	}
	return StateResponse{Success: true, Data: state}, nil
}

func (s *stateService) UpdateState(ctx context.Context, req UpdateStateRequest) (StateResponse, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return StateResponse{}, &ValidationError{Field: "name", Message: "cannot be empty"}
	}

	state, err := s.states.Update(ctx, req.ID, storage.StatePatch{
		Name:     req.Name,
		Position: req.Position,
		Color:    req.Color,
	})
	if err != nil {
		return s.stateResult(ctx, "update", req.ID, err)
	}
	return StateResponse{Success: true, Data: state}, nil
}

func (s *stateService) DeleteState(ctx context.Context, id int64) (StateResponse, error) {
	state, err := s.states.Delete(ctx, id)
	if err != nil {
		return s.stateResult(ctx, "delete", id, err)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "state deleted", "state_id", id)
	// Notes that referenced the state lost their state_id.
	s.events.Publish(events.NoteChange{Type: events.NoteUpdated})
	return StateResponse{Success: true, Data: state}, nil
}

func (s *stateService) stateResult(ctx context.Context, op string, id int64, err error) (StateResponse, error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return StateResponse{Success: false, Error: MsgStateNotFound}, nil
	case errors.Is(err, storage.ErrEmptyPatch):
		return StateResponse{}, &ValidationError{Field: "patch", Message: "no fields to update"}
	}
	contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "state operation failed", "op", op, "state_id", id, "error", err)
	return StateResponse{}, WrapError(err, "failed to "+op+" state")
}
