package models

// BenefitTier holds the quoted coverage figures for an age band
type BenefitTier struct {
	AnnualLimit  string `json:"annualLimit"`
	RoomAndBoard string `json:"roomAndBoard"`
	ExtraDetails string `json:"extraDetails"` // co-payment or deductible
}

// QuoteResult is the outcome of a single quote calculation.
// Benefits is set if and only if Eligible is true.
type QuoteResult struct {
	Age      int          `json:"age"`
	Premium  int          `json:"premium"`
	Eligible bool         `json:"eligible"`
	Benefits *BenefitTier `json:"benefits,omitempty"`
}

// SubmissionPayload is the body forwarded to the lead webhook
type SubmissionPayload struct {
	Birthday     string       `json:"birthday"`
	Gender       Gender       `json:"gender"`
	Smoker       SmokerStatus `json:"smoker"`
	FullName     string       `json:"fullName"`
	MobileNumber string       `json:"mobileNumber"`
	Email        string       `json:"email"`
	Age          int          `json:"age"`
	Premium      int          `json:"premium"`
	Eligible     bool         `json:"eligible"`
	Timestamp    string       `json:"timestamp"`
}
