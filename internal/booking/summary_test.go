package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummarySingleDate(t *testing.T) {
	sum := BuildSummary(SingleDate{Date: "2025-06-21"}, 1)
	require.NotNil(t, sum)
	assert.Equal(t, "21/06/2025 • 1 horario", sum.Text)
	assert.Equal(t, 1, sum.SlotCount)
	assert.Empty(t, sum.Weekdays)

	sum = BuildSummary(SingleDate{Date: "2025-06-21"}, 3)
	require.NotNil(t, sum)
	assert.Equal(t, "21/06/2025 • 3 horarios", sum.Text)
}

func TestBuildSummaryRange(t *testing.T) {
	sum := BuildSummary(DateRange{Start: "2025-06-21", End: "2025-06-25"}, 3)
	require.NotNil(t, sum)
	assert.Equal(t, "21/06/2025 - 25/06/2025 • 3 horarios", sum.Text)
}

func TestBuildSummaryRangeWithWeekdays(t *testing.T) {
	sum := BuildSummary(DateRange{
		Start:    "2025-06-21",
		End:      "2025-06-25",
		Weekdays: []int{1, 3},
	}, 2)
	require.NotNil(t, sum)
	assert.Equal(t, "21/06/2025 - 25/06/2025 • 📆 Lunes, Miércoles • 2 horarios", sum.Text)
	assert.Equal(t, []string{"Lunes", "Miércoles"}, sum.Weekdays)
}

func TestBuildSummaryRangeWithoutEndFallsBackToStart(t *testing.T) {
	sum := BuildSummary(DateRange{Start: "2025-06-21"}, 1)
	require.NotNil(t, sum)
	assert.Equal(t, "21/06/2025 • 1 horario", sum.Text)
}

func TestBuildSummaryNothingToSummarize(t *testing.T) {
	assert.Nil(t, BuildSummary(nil, 2))
	assert.Nil(t, BuildSummary(SingleDate{Date: "2025-06-21"}, 0))
	assert.Nil(t, BuildSummary(SingleDate{}, 2))
	assert.Nil(t, BuildSummary(DateRange{}, 2))
}
