package leads

import (
	"context"
	"crm/database"
	meetingconfirmations "crm/entities/meeting_confirmations"
	"crm/pipeline"
	"crm/schemas"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrInvalidStage        = errors.New("etapa inválida para o pipe de qualificação")
	ErrMeetingDateRequired = errors.New("informe a data da reunião para agendar")
)

type TransitionContext struct {
	MeetingDate *time.Time
	SdrID       *bson.ObjectID
	ActorID     *bson.ObjectID
}

type TransitionResult struct {
	Lead         schemas.Lead                 `json:"lead"`
	Confirmation *schemas.MeetingConfirmation `json:"confirmation,omitempty"`
	// ConfirmationErr is set when the lead moved but its meeting could not
	// be registered in the confirmation pipeline. The move is kept.
	ConfirmationErr error `json:"-"`
}

type Transitions struct {
	leads         database.Repository[schemas.Lead]
	confirmations database.Repository[schemas.MeetingConfirmation]
	hooks         pipeline.Hooks
	now           func() time.Time
	loc           *time.Location
}

func NewTransitions(
	leads database.Repository[schemas.Lead],
	confirmations database.Repository[schemas.MeetingConfirmation],
	hooks pipeline.Hooks,
	now func() time.Time,
	loc *time.Location,
) *Transitions {
	return &Transitions{
		leads:         leads,
		confirmations: confirmations,
		hooks:         hooks,
		now:           now,
		loc:           loc,
	}
}

// ApplyManualTransition moves a lead through the qualification pipeline.
// Scheduling a meeting hands the lead over to the confirmation pipeline.
func (t *Transitions) ApplyManualTransition(ctx context.Context, id bson.ObjectID, newStage schemas.QualificationStage, tc TransitionContext) (TransitionResult, error) {
	result := TransitionResult{}

	if !newStage.Valid() {
		return result, ErrInvalidStage
	}
	if newStage == schemas.STAGE_QUALIFIED_MEETING_SCHEDULED && tc.MeetingDate == nil {
		return result, ErrMeetingDateRequired
	}

	current, err := t.leads.Get(ctx, id)
	if err != nil {
		return result, err
	}
	if current.Stage == newStage {
		result.Lead = current
		return result, nil
	}

	fields := database.Fields{"stage": newStage}
	if tc.SdrID != nil {
		fields["sdr_id"] = tc.SdrID
	}

	updated, err := t.leads.Update(ctx, id, fields)
	if err != nil {
		return result, fmt.Errorf("update lead stage: %w", err)
	}
	result.Lead = updated

	if newStage == schemas.STAGE_QUALIFIED_MEETING_SCHEDULED {
		confirmation, err := t.scheduleMeeting(ctx, updated, tc.MeetingDate)
		if err != nil {
			result.ConfirmationErr = err
			log.Error().
				Err(err).
				Str("lead_id", id.Hex()).
				Msg("lead moved to meeting_scheduled but confirmation could not be created")
		} else {
			result.Confirmation = confirmation
		}
	}

	t.hooks.Run(ctx, pipeline.TransitionEvent{
		PipeType:   schemas.PIPE_QUALIFICATION,
		RecordID:   updated.ID,
		LeadID:     updated.ID,
		FromStage:  string(current.Stage),
		ToStage:    string(newStage),
		AssigneeID: updated.SdrID,
		ActorID:    tc.ActorID,
	})

	return result, nil
}

// scheduleMeeting reuses the lead's open confirmation when there is one,
// moving its date, instead of stacking a second card.
func (t *Transitions) scheduleMeeting(ctx context.Context, lead schemas.Lead, meetingDate *time.Time) (*schemas.MeetingConfirmation, error) {
	open, err := t.confirmations.List(ctx, database.Filter{
		"lead_id": lead.ID,
		"stage":   database.Filter{"$nin": []schemas.ConfirmationStage{schemas.STAGE_ATTENDED, schemas.STAGE_LOST}},
	})
	if err != nil {
		return nil, fmt.Errorf("look up open confirmation: %w", err)
	}

	if len(open) > 0 {
		fields := database.Fields{"meeting_date": meetingDate}
		if lead.SdrID != nil {
			fields["sdr_id"] = lead.SdrID
		}
		updated, err := t.confirmations.Update(ctx, open[0].ID, fields)
		if err != nil {
			return nil, fmt.Errorf("reschedule confirmation: %w", err)
		}
		return &updated, nil
	}

	confirmation := meetingconfirmations.NewConfirmation(lead.ID, meetingDate, lead.SdrID, t.now(), t.loc)
	if err := t.confirmations.Create(ctx, confirmation); err != nil {
		return nil, fmt.Errorf("create confirmation: %w", err)
	}
	return confirmation, nil
}
