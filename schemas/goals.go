package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	GOAL_PERIOD_DAILY   = "daily"
	GOAL_PERIOD_MONTHLY = "monthly"
	GOAL_PERIOD_YEARLY  = "yearly"

	GOAL_METRIC_MEETINGS_ATTENDED = "meetings_attended"
	GOAL_METRIC_PROPOSALS_WON     = "proposals_won"
	GOAL_METRIC_REVENUE           = "revenue"
)

// Goal with an empty MemberID is a team goal.
type Goal struct {
	ID          bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string         `json:"name" bson:"name" validate:"required"`
	Metric      string         `json:"metric" bson:"metric" validate:"required,oneof=meetings_attended proposals_won revenue"`
	Period      string         `json:"period" bson:"period" validate:"required,oneof=daily monthly yearly"`
	TargetValue float64        `json:"target_value" bson:"target_value" validate:"gt=0"`
	MemberID    *bson.ObjectID `json:"member_id,omitempty" bson:"member_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
}

type GoalProgress struct {
	GoalID       bson.ObjectID `json:"goal_id"`
	Name         string        `json:"name"`
	Metric       string        `json:"metric"`
	Period       string        `json:"period"`
	PeriodStart  time.Time     `json:"period_start"`
	PeriodEnd    time.Time     `json:"period_end"`
	CurrentValue float64       `json:"current_value"`
	TargetValue  float64       `json:"target_value"`
	Percentage   float64       `json:"percentage"`
	Achieved     bool          `json:"achieved"`
}
