package models

// RequestOTPRequest is the body for POST /api/auth/request-otp.
type RequestOTPRequest struct {
	CardNumber int    `json:"cardNumber" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
}

// VerifyOTPRequest is the body for POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	CardNumber   int    `json:"cardNumber" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	SubmittedOTP string `json:"submittedOtp" binding:"required"`
}

// AdminLoginRequest is the body for POST /api/admin/login.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminRegisterRequest is the body for POST /api/admin/register.
type AdminRegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// RegisterUserRequest is the body for POST /api/users.
type RegisterUserRequest struct {
	CardNumber int    `json:"cardNumber" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Place      string `json:"place" binding:"required"`
}

// AddPaymentRequest is the body for POST /api/payments (admin manual add).
type AddPaymentRequest struct {
	UserID        string `json:"userId" binding:"required"`
	Amount        int    `json:"amount" binding:"required"`
	Mode          string `json:"mode" binding:"required"`
	Week          int    `json:"week" binding:"required"`
	ScreenshotURL string `json:"screenshotUrl"`
}

// UpsertSchemeRequest is the body for POST /api/scheme.
type UpsertSchemeRequest struct {
	Title       string `json:"title" binding:"required"`
	Prize       string `json:"prize" binding:"required"`
	TotalWeeks  int    `json:"totalWeeks"`
	CostPerWeek int    `json:"costPerWeek"`
}
