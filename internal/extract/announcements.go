package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/finsum/internal/model"
)

// spanTail captures the 30–150 characters of sentence following a trigger.
const spanTail = `.*?([^.]{30,150})`

// amountRule captures a rupee amount after a trigger and formats it with a
// fixed template. Amount captures are not passed through CleanSnippet.
type amountRule struct {
	category string
	format   string
	re       *regexp.Regexp
}

// spanRule captures free text after a trigger; the capture is cleaned.
type spanRule struct {
	trigger  string
	category model.Category
	re       *regexp.Regexp
}

// categorizer assigns a category from the trigger text of a rule.
type categorizer func(trigger string) model.Category

func fixed(c model.Category) categorizer {
	return func(string) model.Category { return c }
}

// legalCategory routes court/tribunal/case triggers to legal_cases and
// everything else in the legal family to disputes.
func legalCategory(trigger string) model.Category {
	t := strings.ToLower(trigger)
	for _, kw := range []string{"case", "court", "tribunal"} {
		if strings.Contains(t, kw) {
			return model.CategoryLegalCases
		}
	}
	return model.CategoryDisputes
}

// managementCategory checks appoint before resign; anything else in the
// family is a board matter.
func managementCategory(trigger string) model.Category {
	t := strings.ToLower(trigger)
	switch {
	case strings.Contains(t, "appoint"):
		return model.CategoryAppointments
	case strings.Contains(t, "resign"):
		return model.CategoryResignations
	default:
		return model.CategoryBoardMeetings
	}
}

func spanFamily(assign categorizer, triggers ...string) []spanRule {
	rules := make([]spanRule, 0, len(triggers))
	for _, t := range triggers {
		rules = append(rules, spanRule{
			trigger:  t,
			category: assign(t),
			re:       compile(`(?is)` + t + spanTail),
		})
	}
	return rules
}

func amountFamily(category, format string, patterns ...string) []amountRule {
	rules := make([]amountRule, 0, len(patterns))
	for _, p := range patterns {
		rules = append(rules, amountRule{
			category: category,
			format:   format,
			re:       compile(`(?i)` + p),
		})
	}
	return rules
}

var dividendRules = amountFamily(string(model.CategoryDividends), "Dividend: ₹%s per share",
	`dividend.*?₹\s*(\d+\.?\d*)\s*per\s+share`,
	`interim\s+dividend.*?₹\s*(\d+\.?\d*)`,
	`final\s+dividend.*?₹\s*(\d+\.?\d*)`,
	`special\s+dividend.*?₹\s*(\d+\.?\d*)`,
)

var fundRaisingRules = amountFamily(string(model.CategoryFundRaising), "Fund Raising: ₹%s",
	`fund.*raising.*?₹\s*`+amount,
	`issuance.*debentures.*?₹\s*`+amount,
	`QIP.*?₹\s*`+amount,
	`preferential.*issue.*?₹\s*`+amount,
	`rights.*issue.*?₹\s*`+amount,
)

// announcementSpans is applied in family order: M&A, legal, regulatory,
// projects, management, environmental, credit rating.
var announcementSpans = concatSpans(
	spanFamily(fixed(model.CategoryAcquisitionsMergers),
		`acquired`,
		`acquisition`,
		`merged`,
		`amalgamation`,
		`takeover`,
	),
	spanFamily(legalCategory,
		`legal.*case`,
		`dispute`,
		`arbitration`,
		`litigation`,
		`court.*case`,
		`hon'ble\s+(?:supreme\s+)?court`,
		`NCLT`,
		`tribunal`,
		`SEBI.*order`,
		`regulatory.*penalty`,
	),
	spanFamily(fixed(model.CategoryRegulatoryUpdates),
		`CERC`,
		`MERC`,
		`regulatory.*commission`,
		`approval`,
		`clearance`,
		`license`,
		`permit`,
	),
	spanFamily(fixed(model.CategoryProjectAnnouncements),
		`project`,
		`expansion`,
		`capacity`,
		`new.*plant`,
		`facility`,
		`MW.*project`,
	),
	spanFamily(managementCategory,
		`appointed`,
		`resigned`,
		`CEO`,
		`MD`,
		`Director`,
		`Board.*meeting`,
	),
	spanFamily(fixed(model.CategoryEnvironmentalIssues),
		`environmental`,
		`pollution`,
		`NGT`,
		`green`,
		`compliance`,
	),
	spanFamily(fixed(model.CategoryCreditRating),
		`credit.*rating`,
		`CRISIL`,
		`ICRA`,
		`Care`,
		`upgraded.*rating`,
		`downgraded.*rating`,
	),
)

func concatSpans(families ...[]spanRule) []spanRule {
	var out []spanRule
	for _, f := range families {
		out = append(out, f...)
	}
	return out
}

// Announcements collects every match of every announcement rule. Unlike the
// metric extractors nothing is first-match-wins here, and a span matched by
// two triggers is recorded twice; see Dedupe for an opt-in cleanup pass.
func Announcements(text string) model.Announcements {
	out := model.NewAnnouncements()
	if text == "" {
		return out
	}

	for _, rules := range [][]amountRule{dividendRules, fundRaisingRules} {
		for _, r := range rules {
			c := model.Category(r.category)
			for _, m := range r.re.FindAllStringSubmatch(text, -1) {
				out[c] = append(out[c], fmt.Sprintf(r.format, m[1]))
			}
		}
	}

	for _, r := range announcementSpans {
		for _, m := range r.re.FindAllStringSubmatch(text, -1) {
			if s, ok := CleanSnippet(trimSpace(m[1])); ok {
				out[r.category] = append(out[r.category], s)
			}
		}
	}

	return out
}
