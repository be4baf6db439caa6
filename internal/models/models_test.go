package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrip_HasMember(t *testing.T) {
	trip := &Trip{Members: []string{"Alice", "Bob"}}
	assert.True(t, trip.HasMember("Bob"))
	assert.False(t, trip.HasMember("bob"))
	assert.False(t, (&Trip{}).HasMember("Alice"))
}

func TestExpense_Involves(t *testing.T) {
	e := &Expense{Payer: "Alice", Participants: []string{"Bob", "Carol"}}
	assert.True(t, e.Involves("Alice"), "payer")
	assert.True(t, e.Involves("Carol"), "participant")
	assert.False(t, e.Involves("Dave"))
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsValidCategory(c.ID), c.ID)
	}
	assert.True(t, IsValidCategory(DefaultCategoryID))
	assert.False(t, IsValidCategory("fuel"))
	assert.False(t, IsValidCategory(""))
}
