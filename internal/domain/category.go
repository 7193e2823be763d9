package domain

// Category groups combos on the shop screen (KidPack, BrainPack, ...).
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Position    int    `json:"-"`
}
