package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Proposal struct {
	ID                    bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID                bson.ObjectID  `json:"lead_id" bson:"lead_id"`
	MeetingConfirmationID *bson.ObjectID `json:"meeting_confirmation_id,omitempty" bson:"meeting_confirmation_id,omitempty"`
	Stage                 ProposalStage  `json:"stage" bson:"stage"`
	Value                 float64        `json:"value" bson:"value" validate:"gte=0"`
	SdrID                 *bson.ObjectID `json:"sdr_id,omitempty" bson:"sdr_id,omitempty"`
	CloserID              *bson.ObjectID `json:"closer_id,omitempty" bson:"closer_id,omitempty"`
	Notes                 string         `json:"notes,omitempty" bson:"notes,omitempty"`
	WonAt                 *time.Time     `json:"won_at,omitempty" bson:"won_at,omitempty"`
	CreatedAt             time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at" bson:"updated_at"`
}
