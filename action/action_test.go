// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfq-lang/pfq/action"
)

func TestNewControlBlockInitialState(t *testing.T) {
	cb := action.NewControlBlock(action.NewGroupContext(8))

	assert.True(t, action.IsDrop(cb.Action))
	assert.False(t, action.IsCopy(cb.Action))
	assert.False(t, action.IsSteering(cb.Action))
	assert.False(t, action.HasStop(cb.Action))
	assert.False(t, action.HasStolen(cb.Action))
	assert.False(t, action.HasRetToKernel(cb.Action))
	assert.Equal(t, uint64(0), cb.Action.ClassMask)
}

func TestMutators(t *testing.T) {
	tests := []struct {
		name  string
		apply func(cb *action.ControlBlock)
		check func(t *testing.T, cb *action.ControlBlock)
	}{
		{
			name:  "Copy",
			apply: action.Copy,
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.IsCopy(cb.Action))
			},
		},
		{
			name:  "Drop",
			apply: action.Drop,
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.IsDrop(cb.Action))
			},
		},
		{
			name:  "Broadcast",
			apply: action.Broadcast,
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.IsCopy(cb.Action))
				assert.Equal(t, action.ClassAny, cb.Action.ClassMask)
			},
		},
		{
			name: "Class",
			apply: func(cb *action.ControlBlock) {
				action.Class(cb, 0x3)
			},
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.IsDrop(cb.Action))
				assert.Equal(t, uint64(0x3), cb.Action.ClassMask)
			},
		},
		{
			name: "Steering",
			apply: func(cb *action.ControlBlock) {
				action.Steering(cb, 0xABCD)
			},
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.IsSteering(cb.Action))
				assert.Equal(t, uint32(0xABCD), cb.Action.Hash)
				assert.Equal(t, uint64(0), cb.Action.ClassMask)
			},
		},
		{
			name: "ClassSteering",
			apply: func(cb *action.ControlBlock) {
				action.ClassSteering(cb, 0x1, 0x42)
			},
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.IsSteering(cb.Action))
				assert.Equal(t, uint32(0x42), cb.Action.Hash)
				assert.Equal(t, uint64(0x1), cb.Action.ClassMask)
			},
		},
		{
			name:  "Stop",
			apply: action.Stop,
			check: func(t *testing.T, cb *action.ControlBlock) {
				assert.True(t, action.HasStop(cb.Action))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := action.NewControlBlock(action.NewGroupContext(1))
			tt.apply(cb)
			tt.check(t, cb)
		})
	}
}

func TestIsStolenSugarMatchesHasStolen(t *testing.T) {
	cb := action.NewControlBlock(action.NewGroupContext(1))
	action.Steal(cb)

	assert.True(t, action.IsStolen(cb))
	assert.Equal(t, action.HasStolen(cb.Action), action.IsStolen(cb))
}

func TestGetCounterInRangeAndOutOfRange(t *testing.T) {
	ctx := action.NewGroupContext(4)
	cb := action.NewControlBlock(ctx)

	c := action.GetCounter(cb, 0)
	require.NotNil(t, c)
	c.Inc()
	assert.Equal(t, int64(1), action.GetCounter(cb, 0).Load())

	assert.Nil(t, action.GetCounter(cb, 4))
	assert.Nil(t, action.GetCounter(cb, -1))
}

func TestGetCounterNilContext(t *testing.T) {
	cb := action.NewControlBlock(nil)
	assert.Nil(t, action.GetCounter(cb, 0))
}

func TestStateAccessors(t *testing.T) {
	cb := action.NewControlBlock(action.NewGroupContext(1))
	action.SetState(cb, 0xDEADBEEF)
	assert.Equal(t, uint64(0xDEADBEEF), action.GetState(cb))
}
