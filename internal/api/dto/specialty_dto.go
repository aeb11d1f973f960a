package dto

// CreateSpecialtyRequest payload for new catalog entries.
type CreateSpecialtyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
