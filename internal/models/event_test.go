package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSpotsLeft(t *testing.T) {
	event := Event{Capacity: 100, AttendeeCount: 37}
	assert.Equal(t, 63, event.SpotsLeft())
}

func TestIsFull(t *testing.T) {
	assert.False(t, (&Event{Capacity: 100, AttendeeCount: 99}).IsFull())
	assert.True(t, (&Event{Capacity: 100, AttendeeCount: 100}).IsFull())
	assert.True(t, (&Event{Capacity: 100, AttendeeCount: 101}).IsFull())
	assert.True(t, (&Event{Capacity: 0, AttendeeCount: 0}).IsFull())
}

func TestIsPaid(t *testing.T) {
	free := decimal.Zero
	paid := decimal.NewFromInt(150)

	assert.False(t, (&Event{}).IsPaid())
	assert.False(t, (&Event{Price: &free}).IsPaid())
	assert.True(t, (&Event{Price: &paid}).IsPaid())
}

func TestRegistrationOpen(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	eventDate := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

	t.Run("draft events never accept registrations", func(t *testing.T) {
		event := Event{Status: EventStatusDraft, Date: eventDate}
		assert.False(t, event.RegistrationOpen(now))
	})

	t.Run("cancelled events never accept registrations", func(t *testing.T) {
		event := Event{Status: EventStatusCancelled, Date: eventDate}
		assert.False(t, event.RegistrationOpen(now))
	})

	t.Run("open before deadline", func(t *testing.T) {
		deadline := time.Date(2026, 4, 15, 23, 59, 59, 0, time.UTC)
		event := Event{Status: EventStatusPublished, Date: eventDate, RegistrationDeadline: &deadline}
		assert.True(t, event.RegistrationOpen(now))
	})

	t.Run("closed after deadline", func(t *testing.T) {
		deadline := time.Date(2026, 4, 9, 23, 59, 59, 0, time.UTC)
		event := Event{Status: EventStatusPublished, Date: eventDate, RegistrationDeadline: &deadline}
		assert.False(t, event.RegistrationOpen(now))
	})

	t.Run("no deadline stays open through event date", func(t *testing.T) {
		event := Event{Status: EventStatusPublished, Date: eventDate}
		assert.True(t, event.RegistrationOpen(now))
		assert.True(t, event.RegistrationOpen(time.Date(2026, 4, 20, 18, 0, 0, 0, time.UTC)))
		assert.False(t, event.RegistrationOpen(time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC)))
	})
}
