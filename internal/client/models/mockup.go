package models

// MockupSummary is one row of the user's mockup listing.
type MockupSummary struct {
	ID             string     `json:"id"`
	ScreenTitle    string     `json:"screenTitle"`
	UserID         string     `json:"userId"`
	DeviceInfo     DeviceInfo `json:"deviceInfo"`
	RenderingHints []string   `json:"renderingHints,omitempty"`
}

// MockupResponse is returned by generate, edit and get-mockup.
// The remaining counters are pointers because get-mockup may omit them.
type MockupResponse struct {
	HTML                     string `json:"html"`
	ScreenID                 string `json:"screenId"`
	RemainingScreenCredits   *int   `json:"remainingScreenCredits,omitempty"`
	RemainingRevisionCredits *int   `json:"remainingRevisionCredits,omitempty"`
}

// HasCredits reports whether the response carries both remaining counters.
func (r MockupResponse) HasCredits() bool {
	return r.RemainingScreenCredits != nil && r.RemainingRevisionCredits != nil
}

type EditRequest struct {
	ScreenID   string `json:"screenId"`
	UserPrompt string `json:"userPrompt"`
}
