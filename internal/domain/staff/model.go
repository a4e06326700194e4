package staff

// Roles.
const (
	RoleDoctor = "Doctor"
	RoleNurse  = "Nurse"
	RoleStaff  = "Staff"
)

// Display statuses.
const (
	StatusAvailable = "Available"
	StatusBusy      = "Busy"
	StatusOffDuty   = "Off Duty"
)

// Availability values stored by the backend.
const (
	AvailabilityAvailable = "available"
	AvailabilityBusy      = "busy"
	AvailabilityOffline   = "offline"
)

// Display fallbacks.
const (
	NoSpecialty       = "Not specified"
	NoContact         = "No contact"
	DefaultDepartment = "General Medicine"
)

// Account is the login account linked to a staff member.
type Account struct {
	AccountID int    `json:"accountID"`
	Username  string `json:"username"`
}

// Record is a medical staff member as the backend returns it.
type Record struct {
	StaffID      int      `json:"staffID"`
	Name         string   `json:"name"`
	Role         string   `json:"role"`
	Specialty    string   `json:"specialty"`
	ContactNo    string   `json:"contactNo"`
	Department   string   `json:"department"`
	Age          int      `json:"age"`
	Gender       string   `json:"gender"`
	Availability string   `json:"availability"`
	UserAccount  *Account `json:"userAccount"`
}

// Member is the staff directory row.
type Member struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Specialty    string `json:"specialty"`
	Email        string `json:"email"`
	Contact      string `json:"contact"`
	Status       string `json:"status"`
	Availability string `json:"availability"`
	Department   string `json:"department"`
	Age          int    `json:"age,omitempty"`
	Gender       string `json:"gender,omitempty"`
	AccountID    int    `json:"accountID,omitempty"`
}

// Request is the add/update body.
type Request struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Specialty  string `json:"specialty"`
	ContactNo  string `json:"contactNo"`
	Department string `json:"department"`
	Age        int    `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
}
