package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MeetingConfirmation struct {
	ID          bson.ObjectID     `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID      bson.ObjectID     `json:"lead_id" bson:"lead_id"`
	Stage       ConfirmationStage `json:"stage" bson:"stage"`
	MeetingDate *time.Time        `json:"meeting_date,omitempty" bson:"meeting_date,omitempty"`
	IsConfirmed bool              `json:"is_confirmed" bson:"is_confirmed"`
	SdrID       *bson.ObjectID    `json:"sdr_id,omitempty" bson:"sdr_id,omitempty"`
	CloserID    *bson.ObjectID    `json:"closer_id,omitempty" bson:"closer_id,omitempty"`
	AttendedAt  *time.Time        `json:"attended_at,omitempty" bson:"attended_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at" bson:"updated_at"`
}
