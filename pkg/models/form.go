package models

// Gender as selected on the first wizard step. Collected and forwarded, not priced.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is one of the selectable options.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// SmokerStatus as selected on the first wizard step. Collected and forwarded, not priced.
type SmokerStatus string

const (
	SmokerYes SmokerStatus = "Yes"
	SmokerNo  SmokerStatus = "No"
)

func (s SmokerStatus) Valid() bool {
	return s == SmokerYes || s == SmokerNo
}

// Represents every field the wizard collects across its steps
type FormData struct {
	// Step 1
	Birthday string       `json:"birthday" form:"birthday"`
	Gender   Gender       `json:"gender" form:"gender"`
	Smoker   SmokerStatus `json:"smoker" form:"smoker"`

	// Step 2
	ContactInfo
}

// ContactInfo is free-form; only non-emptiness is ever checked.
type ContactInfo struct {
	FullName     string `json:"fullName" form:"fullName"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber"`
	Email        string `json:"email" form:"email"`
}

// BasicsRequest is the first-step body accepted by the JSON API
type BasicsRequest struct {
	Birthday string       `json:"birthday" form:"birthday" binding:"required"`
	Gender   Gender       `json:"gender" form:"gender" binding:"required,oneof=Male Female"`
	Smoker   SmokerStatus `json:"smoker" form:"smoker" binding:"required,oneof=Yes No"`
}

// SubmissionRequest is the full lead accepted by the JSON API
type SubmissionRequest struct {
	BasicsRequest
	FullName     string `json:"fullName" form:"fullName" binding:"required"`
	MobileNumber string `json:"mobileNumber" form:"mobileNumber" binding:"required"`
	Email        string `json:"email" form:"email" binding:"required"`
}

// Form converts the request into wizard form data.
func (r SubmissionRequest) Form() FormData {
	return FormData{
		Birthday: r.Birthday,
		Gender:   r.Gender,
		Smoker:   r.Smoker,
		ContactInfo: ContactInfo{
			FullName:     r.FullName,
			MobileNumber: r.MobileNumber,
			Email:        r.Email,
		},
	}
}
