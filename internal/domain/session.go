package domain

// Session is the authenticated vendor identity established by sign-in or
// sign-up and torn down by sign-out.
type Session struct {
	VendorID string
	Email    string
}
