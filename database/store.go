package database

import (
	"crm/schemas"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Store groups the repositories of every entity behind one change feed.
type Store struct {
	Feed *ChangeFeed

	Leads                Repository[schemas.Lead]
	MeetingConfirmations Repository[schemas.MeetingConfirmation]
	Proposals            Repository[schemas.Proposal]
	TeamMembers          Repository[schemas.TeamMember]
	Goals                Repository[schemas.Goal]
	FollowUpAutomations  Repository[schemas.FollowUpAutomation]
	FollowUps            Repository[schemas.FollowUp]
	UpsellClients        Repository[schemas.UpsellClient]
	UpsellCampaigns      Repository[schemas.UpsellCampaign]
	StageHistory         Repository[schemas.StageHistory]
}

func NewMongoStore(client *mongo.Client, feed *ChangeFeed) *Store {
	return &Store{
		Feed:                 feed,
		Leads:                NewMongoRepository[schemas.Lead](client, COLLECTION_LEADS, feed),
		MeetingConfirmations: NewMongoRepository[schemas.MeetingConfirmation](client, COLLECTION_MEETING_CONFIRMATIONS, feed),
		Proposals:            NewMongoRepository[schemas.Proposal](client, COLLECTION_PROPOSALS, feed),
		TeamMembers:          NewMongoRepository[schemas.TeamMember](client, COLLECTION_TEAM_MEMBERS, feed),
		Goals:                NewMongoRepository[schemas.Goal](client, COLLECTION_GOALS, feed),
		FollowUpAutomations:  NewMongoRepository[schemas.FollowUpAutomation](client, COLLECTION_FOLLOW_UP_AUTOMATIONS, feed),
		FollowUps:            NewMongoRepository[schemas.FollowUp](client, COLLECTION_FOLLOW_UPS, feed),
		UpsellClients:        NewMongoRepository[schemas.UpsellClient](client, COLLECTION_UPSELL_CLIENTS, feed),
		UpsellCampaigns:      NewMongoRepository[schemas.UpsellCampaign](client, COLLECTION_UPSELL_CAMPAIGNS, feed),
		StageHistory:         NewMongoRepository[schemas.StageHistory](client, COLLECTION_STAGE_HISTORY, feed),
	}
}

func NewMemoryStore(feed *ChangeFeed) *Store {
	return &Store{
		Feed:                 feed,
		Leads:                NewMemoryRepository[schemas.Lead](COLLECTION_LEADS, feed),
		MeetingConfirmations: NewMemoryRepository[schemas.MeetingConfirmation](COLLECTION_MEETING_CONFIRMATIONS, feed),
		Proposals:            NewMemoryRepository[schemas.Proposal](COLLECTION_PROPOSALS, feed),
		TeamMembers:          NewMemoryRepository[schemas.TeamMember](COLLECTION_TEAM_MEMBERS, feed),
		Goals:                NewMemoryRepository[schemas.Goal](COLLECTION_GOALS, feed),
		FollowUpAutomations:  NewMemoryRepository[schemas.FollowUpAutomation](COLLECTION_FOLLOW_UP_AUTOMATIONS, feed),
		FollowUps:            NewMemoryRepository[schemas.FollowUp](COLLECTION_FOLLOW_UPS, feed),
		UpsellClients:        NewMemoryRepository[schemas.UpsellClient](COLLECTION_UPSELL_CLIENTS, feed),
		UpsellCampaigns:      NewMemoryRepository[schemas.UpsellCampaign](COLLECTION_UPSELL_CAMPAIGNS, feed),
		StageHistory:         NewMemoryRepository[schemas.StageHistory](COLLECTION_STAGE_HISTORY, feed),
	}
}
