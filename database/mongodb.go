package database

import (
	"context"
	"crm/utils"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	MONGO_TIMEOUT = 20 * time.Second

	COLLECTION_LEADS                 = "leads"
	COLLECTION_MEETING_CONFIRMATIONS = "meeting_confirmations"
	COLLECTION_PROPOSALS             = "proposals"
	COLLECTION_TEAM_MEMBERS          = "team_members"
	COLLECTION_GOALS                 = "goals"
	COLLECTION_FOLLOW_UP_AUTOMATIONS = "follow_up_automations"
	COLLECTION_FOLLOW_UPS            = "follow_ups"
	COLLECTION_UPSELL_CLIENTS        = "upsell_clients"
	COLLECTION_UPSELL_CAMPAIGNS      = "upsell_campaigns"
	COLLECTION_STAGE_HISTORY         = "stage_history"
)

func GetDB() string {
	environment := os.Getenv(utils.ENV)

	if environment == utils.ENV_RELEASE {
		return "production"
	}

	if environment == utils.ENV_HOMOLOG {
		return "homolog"
	}

	if environment == utils.ENV_DEVELOPMENT {
		return "development"
	}

	panic("[MongoDB] Invalid DB name")
}

// ConnectMongo opens the process-wide client and checks the server answers.
func ConnectMongo(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(os.Getenv(utils.MONGODB_URI))
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("[MongoDB] connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("[MongoDB] ping: %w", err)
	}

	return client, nil
}
