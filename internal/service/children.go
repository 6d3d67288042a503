package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"abctrack/internal/domain"
	"abctrack/internal/domain/models"
	"abctrack/internal/domain/services"
	"abctrack/internal/store"
)

// maxChildNameLength bounds caregiver-supplied display names.
const maxChildNameLength = 64

// childService implements the ChildService interface over the record store.
type childService struct {
	store  *store.RecordStore
	logger *slog.Logger
}

// NewChildService creates a new child service.
func NewChildService(recordStore *store.RecordStore, logger *slog.Logger) services.ChildService {
	return &childService{
		store:  recordStore,
		logger: logger,
	}
}

func (s *childService) CreateChild(ctx context.Context, userID string, req *services.CreateChildRequest) (*services.ChildView, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	id, record, err := s.store.CreateChild(ctx, userID, req.Name, req.Pronouns)
	if err != nil {
		return nil, err
	}

	// First child becomes selected without waiting for the client's ensure
	// call.
	if _, err := s.store.EnsureSelection(ctx, userID); err != nil {
		s.logger.Warn("post-create selection check failed", "error", err)
	}

	return &services.ChildView{ID: id, ChildRecord: *record}, nil
}

func (s *childService) GetChild(ctx context.Context, userID, id string) (*services.ChildView, error) {
	record, err := s.store.LoadChild(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &services.ChildView{ID: id, ChildRecord: *record}, nil
}

func (s *childService) ListChildren(ctx context.Context, userID string) ([]services.ChildView, error) {
	records, ids, err := s.store.ListChildren(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]services.ChildView, len(records))
	for i := range records {
		views[i] = services.ChildView{ID: ids[i], ChildRecord: records[i]}
	}
	return views, nil
}

func (s *childService) UpdateChild(ctx context.Context, userID, id string, req *services.UpdateChildRequest) (*services.ChildView, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	record, err := s.store.UpdateChild(ctx, userID, id, req.Name, req.Pronouns)
	if err != nil {
		return nil, err
	}

	s.logger.Info("child updated", "id", id, "user_id", userID)
	return &services.ChildView{ID: id, ChildRecord: *record}, nil
}

func (s *childService) DeleteChild(ctx context.Context, userID, id string) error {
	if err := s.store.SoftDeleteChild(ctx, userID, id); err != nil {
		return err
	}

	// A deleted child may have been the selection; re-derive it.
	if _, err := s.store.EnsureSelection(ctx, userID); err != nil {
		s.logger.Warn("post-delete selection check failed", "error", err)
	}
	return nil
}

func (s *childService) ClearLogs(ctx context.Context, userID, id string) error {
	return s.store.ClearLogs(ctx, userID, id)
}

func (s *childService) AddCustomOption(ctx context.Context, userID, id string, req *services.CustomOptionRequest) (*services.ChildView, error) {
	if err := s.validateOptionRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	record, err := s.store.AddCustomOption(ctx, userID, id, req.QuestionID, models.CustomOption{
		Label:     strings.TrimSpace(req.Label),
		Emoji:     req.Emoji,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &services.ChildView{ID: id, ChildRecord: *record}, nil
}

func (s *childService) RemoveCustomOption(ctx context.Context, userID, id string, req *services.CustomOptionRequest) (*services.ChildView, error) {
	if err := s.validateOptionRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	record, err := s.store.RemoveCustomOption(ctx, userID, id, req.QuestionID, strings.TrimSpace(req.Label))
	if err != nil {
		return nil, err
	}
	return &services.ChildView{ID: id, ChildRecord: *record}, nil
}

func (s *childService) Selected(ctx context.Context, userID string) (*models.SelectedChild, error) {
	return s.store.Selected(ctx, userID)
}

func (s *childService) SetSelected(ctx context.Context, userID string, sel models.SelectedChild) error {
	if sel.ID == "" {
		return fmt.Errorf("%w: selection id is required", domain.ErrValidation)
	}
	// The pointer must reference a loadable child.
	if _, err := s.store.LoadChild(ctx, userID, sel.ID); err != nil {
		return err
	}
	return s.store.SetSelected(ctx, userID, sel)
}

func (s *childService) EnsureSelection(ctx context.Context, userID string) (*models.SelectedChild, error) {
	return s.store.EnsureSelection(ctx, userID)
}

func (s *childService) validateCreateRequest(req *services.CreateChildRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, maxChildNameLength),
		),
		validation.Field(&req.Pronouns,
			validation.Length(0, maxChildNameLength),
		),
	)
}

func (s *childService) validateUpdateRequest(req *services.UpdateChildRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Length(1, maxChildNameLength),
		),
		validation.Field(&req.Pronouns,
			validation.Length(0, maxChildNameLength),
		),
	)
}

func (s *childService) validateOptionRequest(req *services.CustomOptionRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.QuestionID, validation.Required),
		validation.Field(&req.Label, validation.Required, validation.Length(1, maxChildNameLength)),
	)
}
