package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FollowUpAutomation struct {
	ID                  bson.ObjectID `json:"id,omitempty" bson:"_id,omitempty" yaml:"-"`
	Name                string        `json:"name" bson:"name" yaml:"name" validate:"required"`
	PipeType            PipeType      `json:"pipe_type" bson:"pipe_type" yaml:"pipe_type" validate:"required"`
	Stage               string        `json:"stage" bson:"stage" yaml:"stage" validate:"required"`
	DaysOffset          int           `json:"days_offset" bson:"days_offset" yaml:"days_offset" validate:"gte=0"`
	TitleTemplate       string        `json:"title_template" bson:"title_template" yaml:"title_template" validate:"required"`
	DescriptionTemplate string        `json:"description_template,omitempty" bson:"description_template,omitempty" yaml:"description_template"`
	Active              bool          `json:"active" bson:"active" yaml:"active"`
	CreatedAt           time.Time     `json:"created_at" bson:"created_at" yaml:"-"`
	UpdatedAt           time.Time     `json:"updated_at" bson:"updated_at" yaml:"-"`
}

type FollowUp struct {
	ID           bson.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	LeadID       bson.ObjectID  `json:"lead_id" bson:"lead_id"`
	AssigneeID   *bson.ObjectID `json:"assignee_id,omitempty" bson:"assignee_id,omitempty"`
	AutomationID *bson.ObjectID `json:"automation_id,omitempty" bson:"automation_id,omitempty"`
	SourceID     *bson.ObjectID `json:"source_id,omitempty" bson:"source_id,omitempty"`
	PipeType     PipeType       `json:"pipe_type,omitempty" bson:"pipe_type,omitempty"`
	Stage        string         `json:"stage,omitempty" bson:"stage,omitempty"`
	Title        string         `json:"title" bson:"title" validate:"required"`
	Description  string         `json:"description,omitempty" bson:"description,omitempty"`
	DueDate      time.Time      `json:"due_date" bson:"due_date"`
	Done         bool           `json:"done" bson:"done"`
	CreatedAt    time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updated_at"`
}
