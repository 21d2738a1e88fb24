package model

// PaymentSession is the authoritative view of a checkout session as reported
// by the payment processor. The paid flag is only ever taken from here,
// never from the client.
type PaymentSession struct {
	ID    string
	Paid  bool
	Total float64
	Lines []OrderItem
}
