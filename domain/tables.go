package domain

// Table is the name of a mongo collection
type Table string

const (
	TableAccounts   Table = "accounts"
	TableBalances   Table = "balances"
	TableListings   Table = "listings"
	TableActivities Table = "activities"
	TableCounters   Table = "counters"
	TableStatistics Table = "statistics"
)
