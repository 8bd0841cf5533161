package proposals

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
	ErrInvalidStage  = errors.New("etapa inválida para o pipe de propostas")
	ErrValueRequired = errors.New("informe o valor da proposta antes de marcá-la como ganha")
)

type TransitionContext struct {
	Value    *float64
	CloserID *bson.ObjectID
	ActorID  *bson.ObjectID
}

type TransitionResult struct {
	Proposal     schemas.Proposal      `json:"proposal"`
	UpsellClient *schemas.UpsellClient `json:"upsell_client,omitempty"`
}

type Transitions struct {
	proposals database.Repository[schemas.Proposal]
	leads     database.Repository[schemas.Lead]
	clients   database.Repository[schemas.UpsellClient]
	hooks     pipeline.Hooks
	now       func() time.Time
}

func NewTransitions(
	proposals database.Repository[schemas.Proposal],
	leads database.Repository[schemas.Lead],
	clients database.Repository[schemas.UpsellClient],
	hooks pipeline.Hooks,
	now func() time.Time,
) *Transitions {
	return &Transitions{
		proposals: proposals,
		leads:     leads,
		clients:   clients,
		hooks:     hooks,
		now:       now,
	}
}

// ApplyManualTransition moves a proposal. Winning it records won_at and
// registers the lead as a client in the upsell pipeline; the latter is a
// secondary effect and only logged when it fails.
func (t *Transitions) ApplyManualTransition(ctx context.Context, id bson.ObjectID, newStage schemas.ProposalStage, tc TransitionContext) (TransitionResult, error) {
	result := TransitionResult{}

	if !newStage.Valid() {
		return result, ErrInvalidStage
	}

	current, err := t.proposals.Get(ctx, id)
	if err != nil {
		return result, err
	}
	if current.Stage == newStage {
		result.Proposal = current
		return result, nil
	}

	value := current.Value
	if tc.Value != nil {
		value = *tc.Value
	}
	if newStage == schemas.STAGE_WON && value <= 0 {
		return result, ErrValueRequired
	}

	fields := database.Fields{"stage": newStage}
	if tc.Value != nil {
		fields["value"] = value
	}
	if tc.CloserID != nil {
		fields["closer_id"] = tc.CloserID
	}
	if newStage == schemas.STAGE_WON {
		fields["won_at"] = t.now()
	}

	updated, err := t.proposals.Update(ctx, id, fields)
	if err != nil {
		return result, fmt.Errorf("update proposal stage: %w", err)
	}
	result.Proposal = updated

	if newStage == schemas.STAGE_WON {
		client, err := t.registerClient(ctx, updated)
		if err != nil {
			log.Error().
				Err(err).
				Str("proposal_id", id.Hex()).
				Str("lead_id", updated.LeadID.Hex()).
				Msg("proposal won but upsell client could not be registered")
		} else {
			result.UpsellClient = client
		}
	}

	t.hooks.Run(ctx, pipeline.TransitionEvent{
		PipeType:   schemas.PIPE_PROPOSAL,
		RecordID:   updated.ID,
		LeadID:     updated.LeadID,
		FromStage:  string(current.Stage),
		ToStage:    string(newStage),
		AssigneeID: updated.CloserID,
		ActorID:    tc.ActorID,
	})

	return result, nil
}

// registerClient adds the won contract to the lead's upsell client,
// creating the client on its first win.
func (t *Transitions) registerClient(ctx context.Context, proposal schemas.Proposal) (*schemas.UpsellClient, error) {
	existing, err := t.clients.List(ctx, database.Filter{"lead_id": proposal.LeadID})
	if err != nil {
		return nil, fmt.Errorf("look up upsell client: %w", err)
	}

	proposalID := proposal.ID
	if len(existing) > 0 {
		client := existing[0]
		if client.ProposalID != nil && *client.ProposalID == proposalID {
			return &client, nil
		}
		updated, err := t.clients.Update(ctx, client.ID, database.Fields{
			"proposal_id":    proposalID,
			"contract_value": client.ContractValue + proposal.Value,
		})
		if err != nil {
			return nil, fmt.Errorf("update upsell client: %w", err)
		}
		return &updated, nil
	}

	lead, err := t.leads.Get(ctx, proposal.LeadID)
	if err != nil {
		return nil, fmt.Errorf("load lead: %w", err)
	}

	name := lead.Company
	if name == "" {
		name = lead.Name
	}
	client := &schemas.UpsellClient{
		LeadID:        lead.ID,
		ProposalID:    &proposalID,
		Name:          name,
		ContractValue: proposal.Value,
		Stage:         schemas.STAGE_UPSELL_ACTIVE,
		OwnerID:       proposal.CloserID,
	}
	if err := t.clients.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create upsell client: %w", err)
	}
	return client, nil
}
