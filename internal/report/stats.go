package report

import "github.com/sells-group/finsum/internal/model"

// Quality maps a total data point count to its tier.
func Quality(total int) model.QualityTier {
	switch {
	case total >= 20:
		return model.QualityExcellent
	case total >= 10:
		return model.QualityGood
	case total >= 5:
		return model.QualityBasic
	default:
		return model.QualityLimited
	}
}

// ComputeStats counts the entries of each result bucket.
func ComputeStats(fin model.Financials, ann model.Announcements, ops model.Operations) model.Stats {
	s := model.Stats{
		Financials:    len(fin),
		Announcements: ann.Count(),
		Operations:    ops.Count(),
	}
	s.Total = s.Financials + s.Announcements + s.Operations
	s.Quality = Quality(s.Total)
	return s
}
