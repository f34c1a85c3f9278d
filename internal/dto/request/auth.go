package request

type RegisterRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Password  string  `json:"password" validate:"required,min=6"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Method     string `json:"method,omitempty" validate:"omitempty,oneof=email phone"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}
