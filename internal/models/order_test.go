package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderActive, false},
		{OrderConfirmed, OrderActive, true},
		{OrderActive, OrderCancelled, true},
		{OrderActive, OrderPending, false},
		{OrderCancelled, OrderPending, false},
		{OrderPending, OrderPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestOrder_ProductKind(t *testing.T) {
	id := uint(1)
	assert.Equal(t, ProductTypeVPS, Order{VPSID: &id}.ProductKind())
	assert.Equal(t, ProductTypeDedicated, Order{DedicatedID: &id}.ProductKind())
}
