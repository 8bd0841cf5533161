package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	ROLE_SDR     = "sdr"
	ROLE_CLOSER  = "closer"
	ROLE_MANAGER = "manager"
)

type TeamMember struct {
	ID             bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LegacyID       uint64        `json:"legacy_id,omitempty" bson:"legacy_id,omitempty"`
	Name           string        `json:"name" bson:"name" validate:"required"`
	Email          string        `json:"email" bson:"email" validate:"required,email"`
	Role           string        `json:"role" bson:"role" validate:"required,oneof=sdr closer manager"`
	BaseSalary     float64       `json:"base_salary" bson:"base_salary" validate:"gte=0"`
	VariableTarget float64       `json:"variable_target" bson:"variable_target" validate:"gte=0"`
	CommissionRate float64       `json:"commission_rate" bson:"commission_rate" validate:"gte=0,lte=1"`
	Active         bool          `json:"active" bson:"active"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" bson:"updated_at"`
}

// OTE is the on-target earnings: base pay plus the full variable target.
func (m TeamMember) OTE() float64 {
	return m.BaseSalary + m.VariableTarget
}

type Commission struct {
	MemberID       bson.ObjectID `json:"member_id"`
	MemberName     string        `json:"member_name"`
	Role           string        `json:"role"`
	SalesCount     int64         `json:"sales_count"`
	SalesValue     float64       `json:"sales_value"`
	LegacyValue    float64       `json:"legacy_value"`
	TargetValue    float64       `json:"target_value"`
	Attainment     float64       `json:"attainment"`
	Tier           string        `json:"tier"`
	Multiplier     float64       `json:"multiplier"`
	BaseSalary     float64       `json:"base_salary"`
	CommissionPaid float64       `json:"commission"`
	Bonus          float64       `json:"bonus"`
	OTE            float64       `json:"ote"`
	Total          float64       `json:"total"`
}

type RankingEntry struct {
	Position         int           `json:"position"`
	MemberID         bson.ObjectID `json:"member_id"`
	MemberName       string        `json:"member_name"`
	Role             string        `json:"role"`
	Points           float64       `json:"points"`
	MeetingsAttended int64         `json:"meetings_attended"`
	ProposalsWon     int64         `json:"proposals_won"`
	WonValue         float64       `json:"won_value"`
}
