package dto

// MenuItemResponse is the canonical menu item shape served to clients.
type MenuItemResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available int     `json:"available"`
}
