package report

import (
	"context"
	"crm/schemas"
	"crm/utils"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCommissionTiers(t *testing.T) {
	member := schemas.TeamMember{Name: "Bia", Role: schemas.ROLE_CLOSER, BaseSalary: 3000, VariableTarget: 1000, CommissionRate: 0.05}

	tests := []struct {
		name       string
		value      float64
		tier       string
		multiplier float64
	}{
		{"below the first tier", 6900, "abaixo", 0},
		{"partial starts at 70%", 7000, "parcial", 0.5},
		{"target reached", 10000, "meta", 1.0},
		{"super target", 12000, "supermeta", 1.5},
		{"hyper target is unbounded", 30000, "hipermeta", 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission := CalculateCommission(member, Sales{Count: 1, Value: tt.value}, 10000, utils.DefaultBonusTiers)
			assert.Equal(t, tt.tier, commission.Tier)
			assert.Equal(t, tt.multiplier, commission.Multiplier)
			assert.InDelta(t, tt.value*0.05, commission.CommissionPaid, 0.001)
			assert.InDelta(t, 1000*tt.multiplier, commission.Bonus, 0.001)
			assert.InDelta(t, 3000+tt.value*0.05+1000*tt.multiplier, commission.Total, 0.001)
			assert.Equal(t, 4000.0, commission.OTE)
		})
	}
}

func TestCalculateCommissionWithoutTarget(t *testing.T) {
	member := schemas.TeamMember{BaseSalary: 2000, VariableTarget: 800, CommissionRate: 0.1}

	commission := CalculateCommission(member, Sales{Count: 2, Value: 5000}, 0, utils.DefaultBonusTiers)
	assert.Zero(t, commission.Attainment)
	assert.Equal(t, "abaixo", commission.Tier)
	assert.Equal(t, 500.0, commission.CommissionPaid)
	assert.Equal(t, 2500.0, commission.Total)
}

func TestCommissionsUseWonProposalsAndRevenueGoals(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	from, until := f.march()

	closer := f.member(t, "Bia", schemas.ROLE_CLOSER, func(m *schemas.TeamMember) {
		m.BaseSalary, m.VariableTarget, m.CommissionRate = 3000, 1000, 0.05
	})
	f.member(t, "Inativo", schemas.ROLE_CLOSER, func(m *schemas.TeamMember) { m.Active = false })

	f.won(t, closer.ID, 6000, time.Date(2024, time.March, 5, 10, 0, 0, 0, f.loc))
	f.won(t, closer.ID, 5000, time.Date(2024, time.March, 20, 10, 0, 0, 0, f.loc))
	f.won(t, closer.ID, 9000, time.Date(2024, time.February, 28, 10, 0, 0, 0, f.loc))

	memberID := closer.ID
	require.NoError(t, f.store.Goals.Create(ctx, &schemas.Goal{
		Name: "Receita Bia", Metric: schemas.GOAL_METRIC_REVENUE, Period: schemas.GOAL_PERIOD_MONTHLY, TargetValue: 10000, MemberID: &memberID,
	}))

	commissions, err := f.reports.Commissions(ctx, from, until)
	require.NoError(t, err)
	require.Len(t, commissions, 1)

	commission := commissions[0]
	assert.Equal(t, closer.ID, commission.MemberID)
	assert.Equal(t, int64(2), commission.SalesCount)
	assert.Equal(t, 11000.0, commission.SalesValue)
	assert.Equal(t, 10000.0, commission.TargetValue)
	assert.Equal(t, 1.1, commission.Attainment)
	assert.Equal(t, "meta", commission.Tier)
	assert.Equal(t, 550.0, commission.CommissionPaid)
	assert.Equal(t, 4550.0, commission.Total)
	assert.Zero(t, commission.LegacyValue)
}

func TestIsCalendarMonth(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)

	tests := []struct {
		name  string
		from  time.Time
		until time.Time
		want  bool
	}{
		{"march", march, march.AddDate(0, 1, 0), true},
		{"march seen from utc", march.UTC(), march.AddDate(0, 1, 0).UTC(), true},
		{"year", time.Date(2024, time.January, 1, 0, 0, 0, 0, loc), time.Date(2025, time.January, 1, 0, 0, 0, 0, loc), false},
		{"two months", march, march.AddDate(0, 2, 0), false},
		{"mid month", march.AddDate(0, 0, 14), march.AddDate(0, 1, 14), false},
		{"utc midnight", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCalendarMonth(tt.from, tt.until, loc))
		})
	}
}

func TestCommissionsRejectWindowsOtherThanOneMonth(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	closer := f.member(t, "Bia", schemas.ROLE_CLOSER, func(m *schemas.TeamMember) {
		m.BaseSalary, m.VariableTarget, m.CommissionRate = 3000, 1000, 0.05
	})
	memberID := closer.ID
	require.NoError(t, f.store.Goals.Create(ctx, &schemas.Goal{
		Name: "Receita Bia", Metric: schemas.GOAL_METRIC_REVENUE, Period: schemas.GOAL_PERIOD_MONTHLY, TargetValue: 10000, MemberID: &memberID,
	}))
	f.won(t, closer.ID, 9000, time.Date(2024, time.January, 10, 10, 0, 0, 0, f.loc))
	f.won(t, closer.ID, 9000, time.Date(2024, time.March, 10, 10, 0, 0, 0, f.loc))

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, f.loc)
	_, err := f.reports.Commissions(ctx, from, from.AddDate(1, 0, 0))
	assert.ErrorIs(t, err, ErrCommissionPeriod)

	t.Setenv(utils.TIMEZONE, "America/Sao_Paulo")
	handler := NewHandler(f.store, f.reports)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/team-members/commissions", handler.GetCommissions)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/team-members/commissions?from=2024-01-01&until=2024-12-31", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/team-members/commissions?from=2024-03-01&until=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := struct {
		Data []schemas.Commission `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, 9000.0, resp.Data[0].SalesValue)
	assert.Equal(t, 0.9, resp.Data[0].Attainment)
}
