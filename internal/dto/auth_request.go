package dto

type AuthRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	VendorID string `json:"vendorId"`
	Email    string `json:"email"`
}
