package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finsum/internal/model"
)

func TestCleanSnippet(t *testing.T) {
	t.Parallel()

	got, ok := CleanSnippet("  the   board  ,  approved\n\nthe plan .")
	require.True(t, ok)
	assert.Equal(t, "The board, approved the plan.", got)
}

func TestCleanSnippet_SeparatorControls(t *testing.T) {
	t.Parallel()

	got, ok := CleanSnippet("stake\x1f\x1fin the\x1c venture\u00a0")
	require.True(t, ok)
	assert.Equal(t, "Stake in the venture", got)
}

func TestCleanSnippet_RejectsShort(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "too short", " a  b  c  d "} {
		_, ok := CleanSnippet(in)
		assert.False(t, ok, "input %q", in)
	}

	got, ok := CleanSnippet("ten chars!")
	assert.True(t, ok)
	assert.Equal(t, "Ten chars!", got)
}

func TestCleanSnippet_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"  the   board  ,  approved\n\nthe plan .",
		"über wichtige   mitteilung ; bitte lesen",
		"plant commissioned at 660 MW : phase two\tcomplete",
		"already Clean sentence here.",
		"x ,, y ;; z ::   trailing  ",
		"ǆemal tower project awarded",
		"\x1dseparated\x1erecords  ,  here",
	}

	for _, in := range inputs {
		once, ok := CleanSnippet(in)
		require.True(t, ok, "input %q", in)
		twice, ok := CleanSnippet(once)
		require.True(t, ok)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestAnnouncements_EmptyText(t *testing.T) {
	t.Parallel()

	got := Announcements("")
	assert.Len(t, got, len(model.Categories))
	assert.Zero(t, got.Count())
}

func TestAnnouncements_Dividend(t *testing.T) {
	t.Parallel()

	got := Announcements("The board recommended a dividend of ₹5 per share")
	assert.Contains(t, got[model.CategoryDividends], "Dividend: ₹5 per share")
}

func TestAnnouncements_InterimDividendMatchedTwice(t *testing.T) {
	t.Parallel()

	got := Announcements("Interim dividend of ₹2.50 per share declared")
	// Both the generic and the interim rule fire on the same sentence.
	assert.Equal(t, []string{"Dividend: ₹2.50 per share", "Dividend: ₹2.50 per share"}, got[model.CategoryDividends])
}

func TestAnnouncements_FundRaising(t *testing.T) {
	t.Parallel()

	got := Announcements("Board cleared fund raising of up to ₹500 crore")
	assert.Equal(t, []string{"Fund Raising: ₹500"}, got[model.CategoryFundRaising])
}

func TestAnnouncements_LegalRouting(t *testing.T) {
	t.Parallel()

	got := Announcements("Tribunal hearing on the pending dispute over land was adjourned to next month")

	require.Len(t, got[model.CategoryDisputes], 1)
	assert.Equal(t, "Over land was adjourned to next month", got[model.CategoryDisputes][0])

	require.Len(t, got[model.CategoryLegalCases], 1)
	assert.Equal(t, "Hearing on the pending dispute over land was adjourned to next month", got[model.CategoryLegalCases][0])
}

func TestAnnouncements_DuplicatesPreserved(t *testing.T) {
	t.Parallel()

	got := Announcements("CRISIL upgraded the credit rating of the company to AA plus with stable outlook")

	want := []string{
		"Of the company to AA plus with stable outlook",
		"Upgraded the credit rating of the company to AA plus with stable outlook",
		"Of the company to AA plus with stable outlook",
	}
	assert.Equal(t, want, got[model.CategoryCreditRating])
}

func TestAnnouncements_ManagementRouting(t *testing.T) {
	t.Parallel()

	got := Announcements("Ravi Kumar resigned from his position with effect from the close of business hours")
	require.Len(t, got[model.CategoryResignations], 1)
	assert.Equal(t, "From his position with effect from the close of business hours", got[model.CategoryResignations][0])
	assert.Empty(t, got[model.CategoryAppointments])
}

func TestAnnouncements_SpanFamilies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		category model.Category
		want     []string
	}{
		{
			name:     "acquisition",
			text:     "The company acquired a majority stake in Sunrise Renewables Private Limited.",
			category: model.CategoryAcquisitionsMergers,
			want:     []string{"A majority stake in Sunrise Renewables Private Limited"},
		},
		{
			name:     "regulatory",
			text:     "The company received approval from the ministry for the new transmission line.",
			category: model.CategoryRegulatoryUpdates,
			want:     []string{"From the ministry for the new transmission line"},
		},
		{
			name:     "project",
			text:     "The manufacturing facility at Sanand started commercial production in May.",
			category: model.CategoryProjectAnnouncements,
			want:     []string{"At Sanand started commercial production in May"},
		},
		{
			name:     "environmental",
			text:     "The plant maintained full pollution control norms across all units this year.",
			category: model.CategoryEnvironmentalIssues,
			want:     []string{"Control norms across all units this year"},
		},
		{
			name:     "no-break spaces in trigger",
			text:     "Hon'ble\u00a0Supreme\u00a0Court admitted the appeal filed against the earlier tariff order.",
			category: model.CategoryLegalCases,
			want:     []string{"Admitted the appeal filed against the earlier tariff order"},
		},
		{
			name:     "span too short",
			text:     "Stake acquired today.",
			category: model.CategoryAcquisitionsMergers,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Announcements(tt.text)
			assert.Equal(t, tt.want, got[tt.category])
		})
	}
}

func TestLegalCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.CategoryLegalCases, legalCategory(`legal.*case`))
	assert.Equal(t, model.CategoryLegalCases, legalCategory(`hon'ble\s+(?:supreme\s+)?court`))
	assert.Equal(t, model.CategoryLegalCases, legalCategory(`tribunal`))
	assert.Equal(t, model.CategoryDisputes, legalCategory(`NCLT`))
	assert.Equal(t, model.CategoryDisputes, legalCategory(`arbitration`))
}

func TestManagementCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.CategoryAppointments, managementCategory(`appointed`))
	assert.Equal(t, model.CategoryResignations, managementCategory(`resigned`))
	assert.Equal(t, model.CategoryBoardMeetings, managementCategory(`Board.*meeting`))
	assert.Equal(t, model.CategoryBoardMeetings, managementCategory(`CEO`))
}

func TestOperations_Orders(t *testing.T) {
	t.Parallel()

	got := Operations("Order book stands at ₹12,500 crore\nReceived new order worth ₹450 crore")
	assert.Equal(t, []string{"Orderbook: ₹12,500"}, got[model.OperationOrderbook])
	assert.Equal(t, []string{"New Order: ₹450"}, got[model.OperationNewOrders])
}

func TestOperations_Capacity(t *testing.T) {
	t.Parallel()

	got := Operations("Installed capacity of 1,200 MW")
	assert.Equal(t, []string{"Operations: 1,200"}, got[model.OperationMetrics])
}

func TestOperations_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		category model.OperationCategory
		want     []string
	}{
		{
			name:     "deal worth is orderbook",
			text:     "Signed a deal worth ₹750 crore with NTPC",
			category: model.OperationOrderbook,
			want:     []string{"Orderbook: ₹750"},
		},
		{
			name:     "contract won is new order",
			text:     "The contract was won at ₹1,250 crore",
			category: model.OperationNewOrders,
			want:     []string{"New Order: ₹1,250"},
		},
		{
			name:     "generation",
			text:     "Total generation stood at 12.5 BU during the quarter",
			category: model.OperationMetrics,
			want:     []string{"Operations: 12.5"},
		},
		{
			name:     "plant load factor",
			text:     "Plant load factor improved to 78.4% in Q3",
			category: model.OperationMetrics,
			want:     []string{"Operations: 78.4%"},
		},
		{
			name:     "production",
			text:     "Coal production of 3,450 tonnes",
			category: model.OperationMetrics,
			want:     []string{"Operations: 3,450"},
		},
		{
			name:     "sales volume",
			text:     "Sales volume rose to 2,100 units",
			category: model.OperationMetrics,
			want:     []string{"Operations: 2,100"},
		},
		{
			name:     "market span kept uncleaned",
			text:     "Power demand grew  sharply across the northern states this summer.",
			category: model.OperationMarketUpdates,
			want:     []string{"Market: grew  sharply across the northern states this summer"},
		},
		{
			name:     "market span capped",
			text:     "industry " + strings.Repeat("x", 150),
			category: model.OperationMarketUpdates,
			want:     []string{"Market: " + strings.Repeat("x", 99)},
		},
		{
			name:     "market span too short",
			text:     "Demand rose.",
			category: model.OperationMarketUpdates,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Operations(tt.text)
			assert.Equal(t, tt.want, got[tt.category])
		})
	}
}

func TestOperations_EmptyText(t *testing.T) {
	t.Parallel()

	got := Operations("")
	assert.Len(t, got, len(model.OperationCategories))
	assert.Zero(t, got.Count())
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	a := model.NewAnnouncements()
	a[model.CategoryCreditRating] = []string{"x rating", "y rating", "x rating"}
	o := model.NewOperations()
	o[model.OperationNewOrders] = []string{"New Order: ₹1", "New Order: ₹1"}

	da, do := Dedupe(a, o)
	assert.Equal(t, []string{"x rating", "y rating"}, da[model.CategoryCreditRating])
	assert.Equal(t, []string{"New Order: ₹1"}, do[model.OperationNewOrders])
	assert.Len(t, da, len(model.Categories))

	// Inputs are untouched.
	assert.Len(t, a[model.CategoryCreditRating], 3)
}
