package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Lead struct {
	ID        bson.ObjectID      `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required"`
	Company   string             `json:"company,omitempty" bson:"company,omitempty"`
	Phone     string             `json:"phone" bson:"phone" validate:"required"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Source    string             `json:"source,omitempty" bson:"source,omitempty"`
	Segment   string             `json:"segment,omitempty" bson:"segment,omitempty"`
	Stage     QualificationStage `json:"stage" bson:"stage"`
	SdrID     *bson.ObjectID     `json:"sdr_id,omitempty" bson:"sdr_id,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
