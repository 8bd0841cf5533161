package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestChangeTouches(t *testing.T) {
	update := Change{Kind: CHANGE_UPDATED, Fields: []string{"stage"}}
	assert.True(t, update.Touches("stage"))
	assert.False(t, update.Touches("meeting_date"))

	assert.True(t, Change{Kind: CHANGE_CREATED}.Touches("meeting_date"))
	assert.True(t, Change{Kind: CHANGE_DELETED}.Touches("meeting_date"))
}

func TestChangeFeedRoutesByEntity(t *testing.T) {
	feed := NewChangeFeed(nil)
	ctx := context.Background()

	leads, all := 0, 0
	unsubscribe := feed.Subscribe(COLLECTION_LEADS, func(Change) { leads++ })
	feed.Subscribe("", func(Change) { all++ })

	feed.Publish(ctx, Change{Entity: COLLECTION_LEADS, Kind: CHANGE_CREATED, ID: bson.NewObjectID()})
	feed.Publish(ctx, Change{Entity: COLLECTION_PROPOSALS, Kind: CHANGE_CREATED, ID: bson.NewObjectID()})
	assert.Equal(t, 1, leads)
	assert.Equal(t, 2, all)

	unsubscribe()
	feed.Publish(ctx, Change{Entity: COLLECTION_LEADS, Kind: CHANGE_DELETED, ID: bson.NewObjectID()})
	assert.Equal(t, 1, leads)
	assert.Equal(t, 3, all)
}

func TestChangeFeedSurvivesPanickingSubscriber(t *testing.T) {
	feed := NewChangeFeed(nil)
	delivered := false
	feed.Subscribe("", func(Change) { panic("boom") })
	feed.Subscribe("", func(Change) { delivered = true })

	assert.NotPanics(t, func() {
		feed.Publish(context.Background(), Change{Entity: COLLECTION_GOALS, Kind: CHANGE_CREATED})
	})
	assert.True(t, delivered)
}

func TestNilChangeFeedIgnoresPublish(t *testing.T) {
	var feed *ChangeFeed
	assert.NotPanics(t, func() {
		feed.Publish(context.Background(), Change{Entity: COLLECTION_LEADS})
	})
}
