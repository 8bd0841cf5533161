package followupautomations

import (
	"context"
	"crm/database"
	"crm/pipeline"
	"crm/schemas"
	"crm/utils"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Automations turns stage changes into dated follow-up tasks.
type Automations struct {
	rules     database.Repository[schemas.FollowUpAutomation]
	followUps database.Repository[schemas.FollowUp]
	leads     database.Repository[schemas.Lead]
	now       func() time.Time
	loc       *time.Location
}

func NewAutomations(
	rules database.Repository[schemas.FollowUpAutomation],
	followUps database.Repository[schemas.FollowUp],
	leads database.Repository[schemas.Lead],
	now func() time.Time,
	loc *time.Location,
) *Automations {
	return &Automations{rules: rules, followUps: followUps, leads: leads, now: now, loc: loc}
}

// Trigger creates one follow-up per active rule of (pipeType, stage), due
// daysOffset calendar days from today. Failures are logged and swallowed:
// follow-ups must never block the pipeline move that caused them.
func (a *Automations) Trigger(ctx context.Context, leadID bson.ObjectID, assignee *bson.ObjectID, pipeType schemas.PipeType, stage string, sourceID *bson.ObjectID) int {
	logger := log.With().
		Str("lead_id", leadID.Hex()).
		Str("pipe_type", string(pipeType)).
		Str("stage", stage).
		Logger()

	rules, err := a.rules.List(ctx, database.Filter{"pipe_type": pipeType, "stage": stage, "active": true})
	if err != nil {
		logger.Error().Err(err).Msg("failed to load follow-up automations")
		return 0
	}
	if len(rules) == 0 {
		return 0
	}

	leadName := ""
	if lead, err := a.leads.Get(ctx, leadID); err == nil {
		leadName = lead.Name
	} else {
		logger.Warn().Err(err).Msg("lead not found while expanding follow-up templates")
	}

	today := utils.StartOfDay(a.now(), a.loc)
	created := 0
	for _, rule := range rules {
		due := today.AddDate(0, 0, rule.DaysOffset)
		vars := map[string]string{
			"lead_name": leadName,
			"stage":     stage,
			"due_date":  due.Format("02/01/2006"),
		}

		ruleID := rule.ID
		followUp := &schemas.FollowUp{
			LeadID:       leadID,
			AssigneeID:   assignee,
			AutomationID: &ruleID,
			SourceID:     sourceID,
			PipeType:     pipeType,
			Stage:        stage,
			Title:        ExpandTemplate(rule.TitleTemplate, vars),
			Description:  ExpandTemplate(rule.DescriptionTemplate, vars),
			DueDate:      due,
		}
		if err := a.followUps.Create(ctx, followUp); err != nil {
			logger.Error().Err(err).Str("automation_id", rule.ID.Hex()).Msg("failed to create follow-up")
			continue
		}
		created++
	}

	logger.Debug().Int("created", created).Msg("follow-up automations triggered")
	return created
}

// Hook adapts Trigger to the post-commit hook list.
func (a *Automations) Hook() pipeline.Hook {
	return pipeline.Hook{
		Name: "follow_up_automation",
		Run: func(ctx context.Context, event pipeline.TransitionEvent) error {
			recordID := event.RecordID
			a.Trigger(ctx, event.LeadID, event.AssigneeID, event.PipeType, event.ToStage, &recordID)
			return nil
		},
	}
}

// ExpandTemplate replaces {{name}} placeholders; unknown ones are kept.
func ExpandTemplate(template string, vars map[string]string) string {
	if template == "" {
		return ""
	}
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
