package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/finsum/internal/model"
)

// orderRules routes "new" and "won" triggers to new_orders; the rest are
// orderbook figures.
var orderRules = func() []amountRule {
	var rules []amountRule
	for _, p := range []string{
		`order.*book.*?₹\s*` + amount,
		`new.*order.*?₹\s*` + amount,
		`contract.*?won.*?₹\s*` + amount,
		`deal.*?worth.*?₹\s*` + amount,
	} {
		c, format := model.OperationOrderbook, "Orderbook: ₹%s"
		if strings.Contains(p, "new") || strings.Contains(p, "won") {
			c, format = model.OperationNewOrders, "New Order: ₹%s"
		}
		rules = append(rules, amountFamily(string(c), format, p)...)
	}
	return rules
}()

var operationalRules = amountFamily(string(model.OperationMetrics), "Operations: %s",
	`capacity.*?(\d+,?\d*)\s*MW`,
	`generation.*?(\d+\.?\d*)\s*BU`,
	`plant.*load.*factor.*?(\d+\.?\d*\s*%)`,
	`production.*?(\d+,?\d*)`,
	`sales.*volume.*?(\d+,?\d*)`,
)

var marketRules = func() []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, t := range []string{
		`market.*share`,
		`competition`,
		`industry`,
		`demand`,
	} {
		out = append(out, compile(`(?is)`+t+`.*?([^.]{30,100})`))
	}
	return out
}()

// Operations collects business operations snippets: order amounts,
// operational figures and market commentary. Every match is kept.
// Market spans are trimmed but not passed through CleanSnippet.
func Operations(text string) model.Operations {
	out := model.NewOperations()
	if text == "" {
		return out
	}

	for _, rules := range [][]amountRule{orderRules, operationalRules} {
		for _, r := range rules {
			c := model.OperationCategory(r.category)
			for _, m := range r.re.FindAllStringSubmatch(text, -1) {
				out[c] = append(out[c], fmt.Sprintf(r.format, m[1]))
			}
		}
	}

	for _, re := range marketRules {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out[model.OperationMarketUpdates] = append(out[model.OperationMarketUpdates],
				"Market: "+trimSpace(m[1]))
		}
	}

	return out
}
