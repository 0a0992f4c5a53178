package underwriting

type Risk string

const (
	LowRisk    Risk = "Low risk"
	MediumRisk Risk = "Medium risk"
	HighRisk   Risk = "High risk"
)

// RiskLabel classifies a debt service coverage ratio. Both cut points are
// exclusive on the low side: 1.25 is medium and 1.1 is high.
func RiskLabel(dscr float64) Risk {
	switch {
	case dscr > 1.25:
		return LowRisk
	case dscr > 1.1:
		return MediumRisk
	default:
		return HighRisk
	}
}

func (r Record) Risk() Risk {
	return RiskLabel(r.DSCR)
}

func (r Risk) String() string {
	return string(r)
}
