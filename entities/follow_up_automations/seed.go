package followupautomations

import (
	"context"
	"crm/database"
	"crm/schemas"
	"crm/utils"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Automations []schemas.FollowUpAutomation `yaml:"automations"`
}

// LoadSeedFile reads automation rules from a YAML file of the form
//
//	automations:
//	  - name: Lembrete D-1
//	    pipe_type: confirmation
//	    stage: confirm_d1
//	    days_offset: 0
//	    title_template: "Confirmar reunião com {{lead_name}}"
//	    active: true
func LoadSeedFile(path string) ([]schemas.FollowUpAutomation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	seed := seedFile{}
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for i, rule := range seed.Automations {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("automation #%d (%s): %w", i+1, rule.Name, err)
		}
	}
	return seed.Automations, nil
}

// Seed upserts rules by (name, pipe_type, stage) and returns how many were
// created and updated.
func Seed(ctx context.Context, repo database.Repository[schemas.FollowUpAutomation], rules []schemas.FollowUpAutomation) (created, updated int, err error) {
	for _, rule := range rules {
		existing, err := repo.List(ctx, database.Filter{"name": rule.Name, "pipe_type": rule.PipeType, "stage": rule.Stage})
		if err != nil {
			return created, updated, err
		}

		if len(existing) == 0 {
			if err := repo.Create(ctx, &rule); err != nil {
				return created, updated, err
			}
			created++
			continue
		}

		_, err = repo.Update(ctx, existing[0].ID, database.Fields{
			"days_offset":          rule.DaysOffset,
			"title_template":       rule.TitleTemplate,
			"description_template": rule.DescriptionTemplate,
			"active":               rule.Active,
		})
		if err != nil {
			return created, updated, err
		}
		updated++
	}
	return created, updated, nil
}

func validateRule(rule schemas.FollowUpAutomation) error {
	if err := utils.ValidateStruct(rule); err != nil {
		return err
	}
	if !rule.PipeType.Valid() {
		return fmt.Errorf("pipe_type inválido: %s", rule.PipeType)
	}
	if !schemas.ValidStage(rule.PipeType, rule.Stage) {
		return fmt.Errorf("etapa %s não pertence ao pipe %s", rule.Stage, rule.PipeType)
	}
	return nil
}
