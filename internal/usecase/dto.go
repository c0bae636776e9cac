package usecase

type CreateLeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
	Source  string `json:"source"`
}

// UpdateLeadInput carries a partial payload. A nil field means "leave it
// untouched": both an absent key and an explicit null decode to nil, so a
// null never clears a stored value.
type UpdateLeadInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Status  *string `json:"status"`
	Notes   *string `json:"notes"`
	Source  *string `json:"source"`
}
