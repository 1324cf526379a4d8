package quote

import "quote-wizard/pkg/models"

const roomAndBoard = "RM 200"

// band is an inclusive age range with its quoted benefits.
type band struct {
	lo, hi int
	tier   models.BenefitTier
}

// Contiguous over [0, MaxEligibleAge]; checked in ascending order.
var bands = []band{
	{0, 39, models.BenefitTier{
		AnnualLimit:  "RM 5,000,000",
		RoomAndBoard: roomAndBoard,
		ExtraDetails: "Co-payment: 5% or capped RM 1,000 per year",
	}},
	{40, 59, models.BenefitTier{
		AnnualLimit:  "RM 2,000,000",
		RoomAndBoard: roomAndBoard,
		ExtraDetails: "Deductible: RM 5,000 per year",
	}},
	{60, MaxEligibleAge, models.BenefitTier{
		AnnualLimit:  "RM 2,000,000",
		RoomAndBoard: roomAndBoard,
		ExtraDetails: "Deductible: RM 10,000 per year",
	}},
}

// ResolveBenefits returns the benefit tier of the first band containing age.
func ResolveBenefits(age int) (models.BenefitTier, bool) {
	for _, b := range bands {
		if age >= b.lo && age <= b.hi {
			return b.tier, true
		}
	}
	return models.BenefitTier{}, false
}
