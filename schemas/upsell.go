package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UpsellClient struct {
	ID            bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID        bson.ObjectID  `json:"lead_id" bson:"lead_id"`
	ProposalID    *bson.ObjectID `json:"proposal_id,omitempty" bson:"proposal_id,omitempty"`
	Name          string         `json:"name" bson:"name" validate:"required"`
	ContractValue float64        `json:"contract_value" bson:"contract_value" validate:"gte=0"`
	Stage         UpsellStage    `json:"stage" bson:"stage"`
	OwnerID       *bson.ObjectID `json:"owner_id,omitempty" bson:"owner_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" bson:"updated_at"`
}

type UpsellCampaign struct {
	ID          bson.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string          `json:"name" bson:"name" validate:"required"`
	TargetStage UpsellStage     `json:"target_stage" bson:"target_stage" validate:"required"`
	StartsAt    time.Time       `json:"starts_at" bson:"starts_at" validate:"required"`
	EndsAt      time.Time       `json:"ends_at" bson:"ends_at" validate:"required,gtfield=StartsAt"`
	ClientIDs   []bson.ObjectID `json:"client_ids" bson:"client_ids"`
	CreatedAt   time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" bson:"updated_at"`
}
