package dto

// CartItem is one line of the student's cart as sent by the frontend.
type CartItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// CheckoutRequest describes the cart submitted for checkout.
type CheckoutRequest struct {
	Cart []CartItem `json:"cart"`
}

// CheckoutResponse carries the hosted payment page URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}
