package domain

import "errors"

var (
	MessageSuccessGetReferences   = "success get reference data"
	MessageSuccessCreateReference = "reference item created successfully"
	MessageSuccessUpdateReference = "reference item updated successfully"
	MessageSuccessDeleteReference = "reference item deleted successfully"

	MessageFailedGetReferences   = "failed to get reference data"
	MessageFailedCreateReference = "failed to create reference item"
	MessageFailedUpdateReference = "failed to update reference item"
	MessageFailedDeleteReference = "failed to delete reference item"

	ErrReferenceKindUnknown = errors.New("unknown reference kind")
	ErrReferenceNotFound    = errors.New("reference item not found")
)

const (
	ReferenceKindFood     = "foods"
	ReferenceKindUnit     = "units"
	ReferenceKindCategory = "categories"
	ReferenceKindCuisine  = "cuisines"
)

type (
	ReferenceItem struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation,omitempty"`
	}

	CreateReferenceRequest struct {
		Name         string `json:"name" validate:"required,max=100"`
		Abbreviation string `json:"abbreviation,omitempty" validate:"max=20"`
	}

	UpdateReferenceRequest struct {
		Name         string `json:"name" validate:"required,max=100"`
		Abbreviation string `json:"abbreviation,omitempty" validate:"max=20"`
	}
)
