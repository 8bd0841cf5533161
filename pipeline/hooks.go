// Package pipeline holds what every kanban pipeline shares: the transition
// event emitted after a manual stage change and the post-commit hooks that
// react to it.
package pipeline

import (
	"context"
	"crm/schemas"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type TransitionEvent struct {
	PipeType   schemas.PipeType
	RecordID   bson.ObjectID
	LeadID     bson.ObjectID
	FromStage  string
	ToStage    string
	AssigneeID *bson.ObjectID
	ActorID    *bson.ObjectID
}

// Hook is a secondary effect of a committed transition. Its error is logged
// and never reaches the caller of the transition.
type Hook struct {
	Name string
	Run  func(ctx context.Context, event TransitionEvent) error
}

type Hooks []Hook

// Run executes every hook in order after the primary write has been
// persisted. Hooks get a context detached from the request so a client
// disconnect does not cut them short.
func (hooks Hooks) Run(ctx context.Context, event TransitionEvent) {
	detached := context.WithoutCancel(ctx)
	for _, hook := range hooks {
		if err := runHook(detached, hook, event); err != nil {
			log.Error().
				Err(err).
				Str("hook", hook.Name).
				Str("pipe_type", string(event.PipeType)).
				Str("record_id", event.RecordID.Hex()).
				Str("to_stage", event.ToStage).
				Msg("post-commit hook failed")
		}
	}
}

func runHook(ctx context.Context, hook Hook, event TransitionEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return hook.Run(ctx, event)
}
