package extract

import "github.com/sells-group/finsum/internal/model"

// Dedupe returns copies of a and o with exact repeats removed within each
// category, keeping first-seen order. The extractors never call it; it is
// enabled by the extract.dedupe setting.
func Dedupe(a model.Announcements, o model.Operations) (model.Announcements, model.Operations) {
	da := model.NewAnnouncements()
	for c, items := range a {
		da[c] = uniq(items)
	}
	do := model.NewOperations()
	for c, items := range o {
		do[c] = uniq(items)
	}
	return da, do
}

func uniq(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
