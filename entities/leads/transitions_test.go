package leads

import (
	"context"
	"crm/database"
	"crm/pipeline"
	"crm/schemas"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fixture struct {
	store       *database.Store
	transitions *Transitions
	events      *[]pipeline.TransitionEvent
	loc         *time.Location
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := func() time.Time { return time.Date(2024, time.March, 10, 14, 0, 0, 0, loc) }

	store := database.NewMemoryStore(nil)
	events := []pipeline.TransitionEvent{}
	hooks := pipeline.Hooks{{
		Name: "recorder",
		Run: func(_ context.Context, event pipeline.TransitionEvent) error {
			events = append(events, event)
			return nil
		},
	}}

	return fixture{
		store:       store,
		transitions: NewTransitions(store.Leads, store.MeetingConfirmations, hooks, now, loc),
		events:      &events,
		loc:         loc,
	}
}

func (f fixture) seedLead(t *testing.T, stage schemas.QualificationStage) schemas.Lead {
	t.Helper()
	lead := &schemas.Lead{Name: "João", Phone: "5511999990000", Stage: stage}
	require.NoError(t, f.store.Leads.Create(context.Background(), lead))
	return *lead
}

func TestSchedulingRequiresAMeetingDate(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, schemas.STAGE_QUALIFYING)

	_, err := f.transitions.ApplyManualTransition(context.Background(), lead.ID, schemas.STAGE_QUALIFIED_MEETING_SCHEDULED, TransitionContext{})
	assert.ErrorIs(t, err, ErrMeetingDateRequired)

	stored, err := f.store.Leads.Get(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, schemas.STAGE_QUALIFYING, stored.Stage)
	assert.Empty(t, *f.events)
}

func TestSchedulingOpensAConfirmationInItsDerivedStage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.seedLead(t, schemas.STAGE_QUALIFYING)
	sdr := bson.NewObjectID()
	meeting := time.Date(2024, time.March, 13, 10, 0, 0, 0, f.loc)

	result, err := f.transitions.ApplyManualTransition(ctx, lead.ID, schemas.STAGE_QUALIFIED_MEETING_SCHEDULED, TransitionContext{
		MeetingDate: &meeting,
		SdrID:       &sdr,
	})
	require.NoError(t, err)
	require.NoError(t, result.ConfirmationErr)

	assert.Equal(t, schemas.STAGE_QUALIFIED_MEETING_SCHEDULED, result.Lead.Stage)
	assert.Equal(t, &sdr, result.Lead.SdrID)
	require.NotNil(t, result.Confirmation)
	assert.Equal(t, schemas.STAGE_CONFIRM_D3, result.Confirmation.Stage)
	assert.Equal(t, lead.ID, result.Confirmation.LeadID)
	assert.Equal(t, &sdr, result.Confirmation.SdrID)

	require.Len(t, *f.events, 1)
	event := (*f.events)[0]
	assert.Equal(t, schemas.PIPE_QUALIFICATION, event.PipeType)
	assert.Equal(t, string(schemas.STAGE_QUALIFYING), event.FromStage)
	assert.Equal(t, string(schemas.STAGE_QUALIFIED_MEETING_SCHEDULED), event.ToStage)
}

func TestReschedulingReusesTheOpenConfirmation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.seedLead(t, schemas.STAGE_QUALIFYING)
	first := time.Date(2024, time.March, 15, 10, 0, 0, 0, f.loc)

	_, err := f.transitions.ApplyManualTransition(ctx, lead.ID, schemas.STAGE_QUALIFIED_MEETING_SCHEDULED, TransitionContext{MeetingDate: &first})
	require.NoError(t, err)

	_, err = f.transitions.ApplyManualTransition(ctx, lead.ID, schemas.STAGE_QUALIFYING, TransitionContext{})
	require.NoError(t, err)

	second := time.Date(2024, time.March, 20, 10, 0, 0, 0, f.loc)
	result, err := f.transitions.ApplyManualTransition(ctx, lead.ID, schemas.STAGE_QUALIFIED_MEETING_SCHEDULED, TransitionContext{MeetingDate: &second})
	require.NoError(t, err)
	require.NotNil(t, result.Confirmation)
	require.NotNil(t, result.Confirmation.MeetingDate)
	assert.True(t, second.Equal(*result.Confirmation.MeetingDate))

	confirmations, err := f.store.MeetingConfirmations.List(ctx, database.Filter{"lead_id": lead.ID})
	require.NoError(t, err)
	assert.Len(t, confirmations, 1)
}

func TestSchedulingAfterAClosedMeetingOpensANewOne(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lead := f.seedLead(t, schemas.STAGE_QUALIFYING)
	require.NoError(t, f.store.MeetingConfirmations.Create(ctx, &schemas.MeetingConfirmation{
		LeadID: lead.ID,
		Stage:  schemas.STAGE_LOST,
	}))

	meeting := time.Date(2024, time.March, 10, 17, 0, 0, 0, f.loc)
	result, err := f.transitions.ApplyManualTransition(ctx, lead.ID, schemas.STAGE_QUALIFIED_MEETING_SCHEDULED, TransitionContext{MeetingDate: &meeting})
	require.NoError(t, err)
	require.NotNil(t, result.Confirmation)
	assert.Equal(t, schemas.STAGE_CONFIRM_SAME_DAY, result.Confirmation.Stage)

	confirmations, err := f.store.MeetingConfirmations.List(ctx, database.Filter{"lead_id": lead.ID})
	require.NoError(t, err)
	assert.Len(t, confirmations, 2)
}

func TestLeadTransitionRejectsUnknownStages(t *testing.T) {
	f := newFixture(t)
	lead := f.seedLead(t, schemas.STAGE_NEW_LEAD)

	_, err := f.transitions.ApplyManualTransition(context.Background(), lead.ID, schemas.QualificationStage("confirm_d1"), TransitionContext{})
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = f.transitions.ApplyManualTransition(context.Background(), bson.NewObjectID(), schemas.STAGE_FIRST_CONTACT, TransitionContext{})
	assert.ErrorIs(t, err, database.ErrNotFound)
}
