package meetingconfirmations

import (
	"context"
	"crm/database"
	"crm/pipeline"
	"crm/schemas"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrInvalidStage   = errors.New("etapa inválida para o pipe de confirmação")
	ErrCreditRequired = errors.New("confirme o closer responsável antes de marcar a reunião como realizada")
)

// TransitionContext carries what the user supplied with the drag. Confirmed
// is the explicit credit confirmation required to enter attended.
type TransitionContext struct {
	SdrID     *bson.ObjectID
	CloserID  *bson.ObjectID
	Confirmed bool
	ActorID   *bson.ObjectID
}

type TransitionResult struct {
	Confirmation schemas.MeetingConfirmation `json:"confirmation"`
	Proposal     *schemas.Proposal           `json:"proposal,omitempty"`
	// ProposalErr is set when the stage change was saved but the downstream
	// proposal could not be created. The stage change is kept.
	ProposalErr error `json:"-"`
}

type Transitions struct {
	confirmations database.Repository[schemas.MeetingConfirmation]
	proposals     database.Repository[schemas.Proposal]
	hooks         pipeline.Hooks
	now           func() time.Time
}

func NewTransitions(
	confirmations database.Repository[schemas.MeetingConfirmation],
	proposals database.Repository[schemas.Proposal],
	hooks pipeline.Hooks,
	now func() time.Time,
) *Transitions {
	return &Transitions{
		confirmations: confirmations,
		proposals:     proposals,
		hooks:         hooks,
		now:           now,
	}
}

// ApplyManualTransition persists a user move to newStage. Entering attended
// also opens a proposal for the lead in the negotiation pipeline; the two
// writes are independent and a failed proposal does not undo the move.
func (t *Transitions) ApplyManualTransition(ctx context.Context, id bson.ObjectID, newStage schemas.ConfirmationStage, tc TransitionContext) (TransitionResult, error) {
	result := TransitionResult{}

	if !newStage.Valid() || newStage.Column() != newStage {
		return result, ErrInvalidStage
	}
	if newStage == schemas.STAGE_ATTENDED && (!tc.Confirmed || tc.CloserID == nil) {
		return result, ErrCreditRequired
	}

	current, err := t.confirmations.Get(ctx, id)
	if err != nil {
		return result, err
	}
	if current.Stage == newStage {
		result.Confirmation = current
		return result, nil
	}

	fields := database.Fields{"stage": newStage}
	if tc.SdrID != nil {
		fields["sdr_id"] = tc.SdrID
	}
	if tc.CloserID != nil {
		fields["closer_id"] = tc.CloserID
	}
	if newStage == schemas.STAGE_ATTENDED {
		fields["attended_at"] = t.now()
		fields["is_confirmed"] = true
	}

	updated, err := t.confirmations.Update(ctx, id, fields)
	if err != nil {
		return result, fmt.Errorf("update meeting confirmation stage: %w", err)
	}
	result.Confirmation = updated

	if newStage == schemas.STAGE_ATTENDED {
		proposal, err := t.openProposal(ctx, updated)
		if err != nil {
			result.ProposalErr = err
			log.Error().
				Err(err).
				Str("confirmation_id", id.Hex()).
				Str("lead_id", updated.LeadID.Hex()).
				Msg("meeting marked as attended but proposal creation failed")
		} else {
			result.Proposal = proposal
		}
	}

	assignee := updated.SdrID
	if updated.CloserID != nil {
		assignee = updated.CloserID
	}
	t.hooks.Run(ctx, pipeline.TransitionEvent{
		PipeType:   schemas.PIPE_CONFIRMATION,
		RecordID:   updated.ID,
		LeadID:     updated.LeadID,
		FromStage:  string(current.Stage),
		ToStage:    string(newStage),
		AssigneeID: assignee,
		ActorID:    tc.ActorID,
	})

	return result, nil
}

// openProposal seeds the negotiation pipeline for the lead. A proposal
// already linked to the confirmation is returned instead of a second one.
func (t *Transitions) openProposal(ctx context.Context, confirmation schemas.MeetingConfirmation) (*schemas.Proposal, error) {
	existing, err := t.proposals.List(ctx, database.Filter{"meeting_confirmation_id": confirmation.ID})
	if err != nil {
		return nil, fmt.Errorf("look up proposal: %w", err)
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	confirmationID := confirmation.ID
	proposal := &schemas.Proposal{
		LeadID:                confirmation.LeadID,
		MeetingConfirmationID: &confirmationID,
		Stage:                 schemas.PROPOSAL_INITIAL_STAGE,
		SdrID:                 confirmation.SdrID,
		CloserID:              confirmation.CloserID,
	}
	if err := t.proposals.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}
	return proposal, nil
}
