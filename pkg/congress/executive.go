package congress

// presidency is the first year of an administration and its party.
type presidency struct {
	from  int
	party Party
}

// presidencies is ordered newest first. The dataset goes back to 1993.
var presidencies = []presidency{
	{2021, Democrat},   // Biden
	{2017, Republican}, // Trump
	{2009, Democrat},   // Obama
	{2001, Republican}, // Bush Jr.
	{1993, Democrat},   // Clinton
}

// ExecutiveParty returns the party that held the White House in year.
// Years before 1993 resolve to Republican.
func ExecutiveParty(year int) Party {
	for _, p := range presidencies {
		if year >= p.from {
			return p.party
		}
	}
	return Republican
}
