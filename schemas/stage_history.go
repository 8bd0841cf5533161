package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const HISTORY_ORIGIN_MANUAL = "manual"

type StageHistory struct {
	ID        bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	PipeType  PipeType       `json:"pipe_type" bson:"pipe_type"`
	RecordID  bson.ObjectID  `json:"record_id" bson:"record_id"`
	LeadID    bson.ObjectID  `json:"lead_id" bson:"lead_id"`
	FromStage string         `json:"from_stage" bson:"from_stage"`
	ToStage   string         `json:"to_stage" bson:"to_stage"`
	Origin    string         `json:"origin" bson:"origin"`
	ActorID   *bson.ObjectID `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}
