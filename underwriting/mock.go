package underwriting

// MockRecord returns the fixed property metrics used until a real data
// provider is wired in. Every call returns a fresh value.
func MockRecord(address string) Record {
	return Record{
		Address:           address,
		Type:              Multifamily,
		YearBuilt:         1995,
		SqFt:              2500,
		Units:             4,
		Value:             750000,
		GrossRent:         60000,
		Vacancy:           5,
		Expenses:          20000,
		NOI:               37000,
		CapRate:           4.9,
		DSCR:              1.4,
		CrimeScore:        7,
		WalkScore:         82,
		MedianIncome:      85000,
		PopulationDensity: 12000,
		SchoolRating:      8,
	}
}
