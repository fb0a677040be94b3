package domain

// ProspectCriteria holds optional prospect filters. Empty fields impose no
// constraint; the set fields are combined with AND.
type ProspectCriteria struct {
	Search     string
	Status     Status
	Service    string
	AssignedTo string
	Tag        string
}

// Granularity is the reporting period unit.
type Granularity string

const (
	Monthly Granularity = "monthly"
	Annual  Granularity = "annual"
)

// Valid reports whether g is monthly or annual.
func (g Granularity) Valid() bool {
	return g == Monthly || g == Annual
}

// TransactionCriteria holds optional transaction filters. Period is YYYY-MM
// for monthly granularity and YYYY for annual.
type TransactionCriteria struct {
	Type        TransactionType
	Category    string
	Granularity Granularity
	Period      string
}

// KPIs summarises the transactions of the current month or year.
type KPIs struct {
	TotalIncome        float64
	TotalExpenses      float64
	NetProfit          float64
	Target             float64
	ProgressPercentage float64
}
