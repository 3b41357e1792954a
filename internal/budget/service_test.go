package budget

import (
	"fmt"
	"testing"

	"github.com/kartik0x00/Budget-Formula/internal/config"
	"github.com/kartik0x00/Budget-Formula/internal/database"
	"github.com/kartik0x00/Budget-Formula/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewService(db)
}

func int64p(v int64) *int64 { return &v }
func strp(s string) *string { return &s }

func mustCreate(t *testing.T, s *Service, date string, income, expenses, fixedPays int64) string {
	t.Helper()
	entry, err := s.Create(EntryInput{
		Date:      date,
		Income:    int64p(income),
		Expenses:  int64p(expenses),
		FixedPays: int64p(fixedPays),
	})
	require.NoError(t, err)
	return entry.ID
}

func TestCreateDefaults(t *testing.T) {
	s := newTestService(t)

	entry, err := s.Create(EntryInput{Date: "2026-03-05"})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 3, entry.Month)
	assert.Equal(t, 2026, entry.Year)
	assert.Zero(t, entry.Income)
	assert.Zero(t, entry.Expenses)
	assert.Zero(t, entry.FixedPays)
	assert.Empty(t, entry.IncomeSource)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestCreateValidation(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name string
		in   EntryInput
	}{
		{"missing date", EntryInput{Income: int64p(100)}},
		{"bad date", EntryInput{Date: "not-a-date"}},
		{"negative income", EntryInput{Date: "2026-03-05", Income: int64p(-1)}},
		{"negative expenses", EntryInput{Date: "2026-03-05", Expenses: int64p(-1)}},
		{"negative fixed pays", EntryInput{Date: "2026-03-05", FixedPays: int64p(-1)}},
		{"year below 1900", EntryInput{Date: "1899-12-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(tt.in)
			var appErr *util.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 400, appErr.StatusCode)
		})
	}

	// nothing was persisted by the rejected creates
	summary, err := s.GetSummary(3, 2026)
	require.NoError(t, err)
	assert.Empty(t, summary.Entries)
}

func TestCreateAcceptsBoundaryValues(t *testing.T) {
	s := newTestService(t)

	// zero amounts and the first/last month of the year are all valid
	for _, date := range []string{"2026-01-01", "2026-12-31", "1900-01-01"} {
		_, err := s.Create(EntryInput{Date: date, Income: int64p(0)})
		assert.NoError(t, err, date)
	}
}

func TestGetSummaryScenario(t *testing.T) {
	s := newTestService(t)

	id := mustCreate(t, s, "2026-03-05", 50000, 0, 15000)

	summary, err := s.GetSummary(3, 2026)
	require.NoError(t, err)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, Totals{Income: 50000, Expenses: 0, FixedPays: 15000}, summary.Totals)
	assert.Equal(t, int64(35000), summary.Left)

	// raising expenses moves left accordingly
	_, err = s.Update(id, EntryInput{Expenses: int64p(20000)})
	require.NoError(t, err)

	summary, err = s.GetSummary(3, 2026)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), summary.Totals.Expenses)
	assert.Equal(t, int64(15000), summary.Left)
}

func TestGetSummaryOrdersByDate(t *testing.T) {
	s := newTestService(t)

	mustCreate(t, s, "2026-03-20", 0, 10, 0)
	mustCreate(t, s, "2026-03-01", 0, 20, 0)
	mustCreate(t, s, "2026-03-10", 0, 30, 0)

	summary, err := s.GetSummary(3, 2026)
	require.NoError(t, err)
	require.Len(t, summary.Entries, 3)
	for i := 1; i < len(summary.Entries); i++ {
		assert.False(t, summary.Entries[i].Date.Before(summary.Entries[i-1].Date))
	}
	assert.Equal(t, int64(60), summary.Totals.Expenses)
	assert.Equal(t, int64(-60), summary.Left)
}

func TestGetSummaryPartition(t *testing.T) {
	s := newTestService(t)

	mustCreate(t, s, "2026-03-31", 100, 0, 0)
	mustCreate(t, s, "2026-04-01", 200, 0, 0)
	mustCreate(t, s, "2025-03-15", 400, 0, 0)

	march, err := s.GetSummary(3, 2026)
	require.NoError(t, err)
	require.Len(t, march.Entries, 1)
	assert.Equal(t, int64(100), march.Totals.Income)

	april, err := s.GetSummary(4, 2026)
	require.NoError(t, err)
	require.Len(t, april.Entries, 1)
	assert.Equal(t, int64(200), april.Totals.Income)

	empty, err := s.GetSummary(5, 2026)
	require.NoError(t, err)
	assert.Empty(t, empty.Entries)
	assert.Zero(t, empty.Left)
}

func TestGetSummaryValidation(t *testing.T) {
	s := newTestService(t)

	for _, tt := range []struct {
		month, year int
	}{
		{0, 2026},
		{13, 2026},
		{3, 1899},
	} {
		_, err := s.GetSummary(tt.month, tt.year)
		var appErr *util.AppError
		require.ErrorAs(t, err, &appErr, "month=%d year=%d", tt.month, tt.year)
		assert.Equal(t, 400, appErr.StatusCode)
	}

	for _, month := range []int{1, 12} {
		_, err := s.GetSummary(month, 2026)
		assert.NoError(t, err)
	}
}

func TestUpdatePartial(t *testing.T) {
	s := newTestService(t)

	entry, err := s.Create(EntryInput{
		Date:         "2026-03-05",
		Income:       int64p(500),
		IncomeSource: strp("salary"),
	})
	require.NoError(t, err)

	// only expenses present: everything else stays
	updated, err := s.Update(entry.ID, EntryInput{Expenses: int64p(120)})
	require.NoError(t, err)
	assert.Equal(t, int64(500), updated.Income)
	assert.Equal(t, "salary", updated.IncomeSource)
	assert.Equal(t, int64(120), updated.Expenses)
	assert.Equal(t, entry.Date.Unix(), updated.Date.Unix())
}

func TestUpdateRederivesPeriod(t *testing.T) {
	s := newTestService(t)

	id := mustCreate(t, s, "2026-03-05", 1000, 0, 0)

	updated, err := s.Update(id, EntryInput{Date: "2026-04-02"})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Month)
	assert.Equal(t, 2026, updated.Year)

	// the entry moved from March to April
	march, err := s.GetSummary(3, 2026)
	require.NoError(t, err)
	assert.Empty(t, march.Entries)

	april, err := s.GetSummary(4, 2026)
	require.NoError(t, err)
	require.Len(t, april.Entries, 1)
	assert.Equal(t, int64(1000), april.Totals.Income)
}

func TestUpdateRejectedLeavesRecordUnchanged(t *testing.T) {
	s := newTestService(t)

	id := mustCreate(t, s, "2026-03-05", 1000, 200, 0)

	_, err := s.Update(id, EntryInput{Income: int64p(-5)})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)

	entry, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), entry.Income)
	assert.Equal(t, int64(200), entry.Expenses)
}

func TestUpdateNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.Update("no-such-id", EntryInput{Income: int64p(1)})
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestDelete(t *testing.T) {
	s := newTestService(t)

	id := mustCreate(t, s, "2026-03-05", 1000, 0, 0)
	require.NoError(t, s.Delete(id))

	_, err := s.Get(id)
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)

	// deleting again reports not found and the store stays unchanged
	err = s.Delete(id)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestAvailablePeriods(t *testing.T) {
	s := newTestService(t)

	mustCreate(t, s, "2025-12-01", 1, 0, 0)
	mustCreate(t, s, "2026-03-05", 1, 0, 0)
	mustCreate(t, s, "2026-03-20", 1, 0, 0) // same period, must stay distinct
	mustCreate(t, s, "2026-01-15", 1, 0, 0)

	periods, err := s.AvailablePeriods()
	require.NoError(t, err)
	assert.Equal(t, []Period{
		{Year: 2026, Month: 3},
		{Year: 2026, Month: 1},
		{Year: 2025, Month: 12},
	}, periods)
}

func TestAvailablePeriodsEmpty(t *testing.T) {
	s := newTestService(t)

	periods, err := s.AvailablePeriods()
	require.NoError(t, err)
	assert.Empty(t, periods)
}
