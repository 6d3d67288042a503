package services

import (
	"context"

	"abctrack/internal/domain/models"
)

// CreateChildRequest represents a request to create a child record.
type CreateChildRequest struct {
	Name     string `json:"name"`
	Pronouns string `json:"pronouns"`
}

// UpdateChildRequest edits display fields. The storage id never changes.
type UpdateChildRequest struct {
	Name     string `json:"name"`
	Pronouns string `json:"pronouns"`
}

// CustomOptionRequest adds or removes a caregiver-defined pin.
type CustomOptionRequest struct {
	QuestionID string `json:"question_id"`
	Label      string `json:"label"`
	Emoji      string `json:"emoji"`
}

// ChildView pairs a record with its storage id for API responses.
type ChildView struct {
	ID string `json:"id"`
	models.ChildRecord
}

// ChildService defines business logic operations for child records.
type ChildService interface {
	// CreateChild validates the request and creates a new record with empty
	// log arrays.
	CreateChild(ctx context.Context, userID string, req *CreateChildRequest) (*ChildView, error)

	// GetChild loads one record by id, including soft-deleted ones.
	GetChild(ctx context.Context, userID, id string) (*ChildView, error)

	// ListChildren returns all non-deleted records for the caregiver.
	ListChildren(ctx context.Context, userID string) ([]ChildView, error)

	// UpdateChild edits name/pronoun fields.
	UpdateChild(ctx context.Context, userID, id string, req *UpdateChildRequest) (*ChildView, error)

	// DeleteChild soft-deletes: the record stays loadable by id.
	DeleteChild(ctx context.Context, userID, id string) error

	// ClearLogs resets both log arrays, keeping the record.
	ClearLogs(ctx context.Context, userID, id string) error

	// AddCustomOption / RemoveCustomOption manage caregiver pins.
	AddCustomOption(ctx context.Context, userID, id string, req *CustomOptionRequest) (*ChildView, error)
	RemoveCustomOption(ctx context.Context, userID, id string, req *CustomOptionRequest) (*ChildView, error)

	// Selection pointer operations.
	Selected(ctx context.Context, userID string) (*models.SelectedChild, error)
	SetSelected(ctx context.Context, userID string, sel models.SelectedChild) error
	EnsureSelection(ctx context.Context, userID string) (*models.SelectedChild, error)
}
