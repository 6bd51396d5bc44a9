package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"vyzioads/internal/domain/entity"
)

func TestPublishRunsHandlersInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string

	bus.Subscribe(MessageCreated{}.Name(), func(_ context.Context, _ Event) {
		order = append(order, "ledger")
	})
	bus.Subscribe(MessageCreated{}.Name(), func(_ context.Context, _ Event) {
		order = append(order, "mirror")
	})

	bus.Publish(context.Background(), MessageCreated{Message: &entity.Message{ID: 1}})

	assert.Equal(t, []string{"ledger", "mirror"}, order)
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), ChatReset{OldChatID: 1})
	})
}

func TestPanickingHandlerDoesNotStopFanout(t *testing.T) {
	bus := NewBus()
	delivered := false

	bus.Subscribe(NotificationCreated{}.Name(), func(_ context.Context, _ Event) {
		panic("boom")
	})
	bus.Subscribe(NotificationCreated{}.Name(), func(_ context.Context, _ Event) {
		delivered = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), NotificationCreated{RecipientID: 1})
	})
	assert.True(t, delivered)
}
