package report

import (
	"context"
	"crm/database"
	"crm/schemas"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type reportFixture struct {
	store   *database.Store
	reports *Reports
	loc     *time.Location
	now     time.Time
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, loc)
	store := database.NewMemoryStore(nil)

	return reportFixture{
		store:   store,
		reports: NewReports(store, nil, nil, func() time.Time { return now }, loc),
		loc:     loc,
		now:     now,
	}
}

func (f reportFixture) member(t *testing.T, name, role string, mutate ...func(*schemas.TeamMember)) schemas.TeamMember {
	t.Helper()
	member := &schemas.TeamMember{Name: name, Email: name + "@crm.test", Role: role, Active: true}
	for _, m := range mutate {
		m(member)
	}
	require.NoError(t, f.store.TeamMembers.Create(context.Background(), member))
	return *member
}

func (f reportFixture) attended(t *testing.T, sdr bson.ObjectID, at time.Time) {
	t.Helper()
	require.NoError(t, f.store.MeetingConfirmations.Create(context.Background(), &schemas.MeetingConfirmation{
		LeadID:     bson.NewObjectID(),
		Stage:      schemas.STAGE_ATTENDED,
		SdrID:      &sdr,
		AttendedAt: &at,
	}))
}

func (f reportFixture) won(t *testing.T, closer bson.ObjectID, value float64, at time.Time) {
	t.Helper()
	require.NoError(t, f.store.Proposals.Create(context.Background(), &schemas.Proposal{
		LeadID:   bson.NewObjectID(),
		Stage:    schemas.STAGE_WON,
		Value:    value,
		CloserID: &closer,
		WonAt:    &at,
	}))
}

func (f reportFixture) march() (time.Time, time.Time) {
	from := time.Date(2024, time.March, 1, 0, 0, 0, 0, f.loc)
	return from, from.AddDate(0, 1, 0)
}
