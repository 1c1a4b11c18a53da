package model

// Category classifies a corporate announcement snippet.
type Category string

const (
	CategoryDividends            Category = "dividends"
	CategoryFundRaising          Category = "fund_raising"
	CategoryAcquisitionsMergers  Category = "acquisitions_mergers"
	CategoryAppointments         Category = "appointments"
	CategoryResignations         Category = "resignations"
	CategoryBoardMeetings        Category = "board_meetings"
	CategoryRegulatoryUpdates    Category = "regulatory_updates"
	CategoryProjectAnnouncements Category = "project_announcements"
	CategoryCapacityExpansions   Category = "capacity_expansions"
	CategoryNewContracts         Category = "new_contracts"
	CategoryLegalCases           Category = "legal_cases"
	CategoryDisputes             Category = "disputes"
	CategoryArbitration          Category = "arbitration"
	CategoryRegulatoryPenalties  Category = "regulatory_penalties"
	CategoryEnvironmentalIssues  Category = "environmental_issues"
	CategoryInsolvencyCases      Category = "insolvency_cases"
	CategoryCreditRating         Category = "credit_rating"
)

// Categories lists every announcement category in declaration order.
var Categories = []Category{
	CategoryDividends,
	CategoryFundRaising,
	CategoryAcquisitionsMergers,
	CategoryAppointments,
	CategoryResignations,
	CategoryBoardMeetings,
	CategoryRegulatoryUpdates,
	CategoryProjectAnnouncements,
	CategoryCapacityExpansions,
	CategoryNewContracts,
	CategoryLegalCases,
	CategoryDisputes,
	CategoryArbitration,
	CategoryRegulatoryPenalties,
	CategoryEnvironmentalIssues,
	CategoryInsolvencyCases,
	CategoryCreditRating,
}

// Announcements maps each category to its snippets in match order.
type Announcements map[Category][]string

// NewAnnouncements returns an Announcements with every category present and empty.
func NewAnnouncements() Announcements {
	a := make(Announcements, len(Categories))
	for _, c := range Categories {
		a[c] = []string{}
	}
	return a
}

// Count returns the total number of snippets across all categories.
func (a Announcements) Count() int {
	n := 0
	for _, items := range a {
		n += len(items)
	}
	return n
}

// OperationCategory classifies a business operations snippet.
type OperationCategory string

const (
	OperationOrderbook           OperationCategory = "orderbook"
	OperationNewOrders           OperationCategory = "new_orders"
	OperationMetrics             OperationCategory = "operational_metrics"
	OperationMarketUpdates       OperationCategory = "market_updates"
	OperationClientAnnouncements OperationCategory = "client_announcements"
	OperationTechnologyUpdates   OperationCategory = "technology_updates"
)

// OperationCategories lists every operations category in display order.
var OperationCategories = []OperationCategory{
	OperationOrderbook,
	OperationNewOrders,
	OperationMetrics,
	OperationMarketUpdates,
	OperationClientAnnouncements,
	OperationTechnologyUpdates,
}

// Operations maps each operations category to its snippets in match order.
type Operations map[OperationCategory][]string

// NewOperations returns an Operations with every category present and empty.
func NewOperations() Operations {
	o := make(Operations, len(OperationCategories))
	for _, c := range OperationCategories {
		o[c] = []string{}
	}
	return o
}

// Count returns the total number of snippets across all categories.
func (o Operations) Count() int {
	n := 0
	for _, items := range o {
		n += len(items)
	}
	return n
}
