package account

// Form field keys used in validation.Errors.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
)

const MinPasswordLength = 6

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffInfo is the medical staff summary attached to a user account.
type StaffInfo struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Specialty string `json:"specialty"`
	ContactNo string `json:"contactNo"`
}

// User is the account summary returned by the login endpoint.
type User struct {
	ID           int        `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	Role         string     `json:"role"`
	MedicalStaff *StaffInfo `json:"medicalStaff,omitempty"`
}

// LoginResponse is the login endpoint's envelope. Failures carry Success
// false and a Message.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// Profile is the signed-in account joined with its staff record, when one
// is linked.
type Profile struct {
	AccountID   int    `json:"accountID"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	StaffID     *int   `json:"staffID,omitempty"`
	Name        string `json:"name"`
	MedicalRole string `json:"medicalRole,omitempty"`
	Specialty   string `json:"specialty,omitempty"`
	ContactNo   string `json:"contactNo,omitempty"`
	Department  string `json:"department,omitempty"`
	Age         *int   `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
}

// PasswordChange is the password form draft.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// PasswordRequest is the change-password request body.
type PasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	AccountID       int    `json:"accountID"`
}
