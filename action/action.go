// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

// Package action implements the in-kernel action contract a PFQ pipeline
// computes over (§3, §4.5 of the specification): the per-packet control
// block every kernel-side function implementation reads and mutates,
// its pure mutators and their precedence rules, the class/steering
// predicates, and the per-group sparse counter bank.
//
// The actual packet dispatch loop that walks a [github.com/pfq-lang/pfq]
// descriptor array and invokes the named kernel functions against a
// ControlBlock is outside this package's scope (§1) — this package
// defines the contract those functions observe, not the evaluator.
package action

import (
	"unsafe"

	"go.uber.org/atomic"

	"github.com/pfq-lang/pfq/internal/diag"
)

// Type is the packet's disposition as computed by a group's pipeline.
type Type uint8

const (
	// TypeDrop discards the packet for this group. This is the zero
	// value, matching the initial state at each group's evaluation (§3).
	TypeDrop Type = iota
	// TypeCopy delivers the packet to this group's sockets.
	TypeCopy
	// TypeSteer delivers the packet to a subset of sockets selected by
	// Hash.
	TypeSteer
)

func (t Type) String() string {
	switch t {
	case TypeDrop:
		return "drop"
	case TypeCopy:
		return "copy"
	case TypeSteer:
		return "steer"
	default:
		return "unknown"
	}
}

// Attr is the bitset of action attribute flags (§3).
type Attr uint8

const (
	// AttrStop asks the evaluator to cease program evaluation for this
	// packet at the first boundary that observes it.
	AttrStop Attr = 1 << iota
	// AttrStolen marks the packet as taken out of the capture path.
	AttrStolen
	// AttrRetToKernel asks for the packet to be passed back to the
	// kernel.
	AttrRetToKernel
)

// ClassAny is the class_mask value meaning "every class", used by
// [Broadcast].
const ClassAny uint64 = ^uint64(0)

// Action is the `{type, class_mask, hash, attr}` tuple attached to a
// packet during a group's evaluation (§3, GLOSSARY).
type Action struct {
	ClassMask uint64
	Hash      uint32
	Type      Type
	Attr      Attr
}

// ControlBlock is the in-packet per-group scratch area (§3). Its size
// is bound by the historical `sk_buff->cb` budget; see
// controlBlockBudget below.
type ControlBlock struct {
	Action Action

	GroupMask uint64
	State     uint64

	Ctx *GroupContext

	DirectSkb bool
	Right     bool
}

// controlBlockBudget is the platform-mandated scratch size PFQ's
// control block must fit within (historically 48 bytes, §6/§9).
const controlBlockBudget = 48

// This mirrors the original's
// BUILD_BUG_ON_MSG(sizeof(struct pfq_cb) > sizeof(skb->cb), ...): it
// only rejects *exceeding* the budget (an array of negative length is a
// compile error), the same asymmetric check the original performs.
var _ [controlBlockBudget - int(unsafe.Sizeof(ControlBlock{}))]byte

// GroupContext holds a group's sparse, contention-tolerant per-packet
// counters (Q_MAX_COUNTERS in §3/§4.5), visible across CPUs via
// go.uber.org/atomic.Int64.
type GroupContext struct {
	counters []atomic.Int64
}

// NewGroupContext allocates a counter bank of size n.
func NewGroupContext(n int) *GroupContext {
	return &GroupContext{counters: make([]atomic.Int64, n)}
}

// NewControlBlock returns a ControlBlock in its initial per-group
// evaluation state (§3): Type TypeDrop, ClassMask 0, Attr 0, State 0,
// Right false, Ctx bound to the group's counters.
func NewControlBlock(ctx *GroupContext) *ControlBlock {
	return &ControlBlock{Ctx: ctx}
}

// GetCounter returns the n'th sparse counter for this packet's group,
// or nil if n is out of range (§4.5).
func GetCounter(cb *ControlBlock, n int) *atomic.Int64 {
	if cb == nil || cb.Ctx == nil || n < 0 || n >= len(cb.Ctx.counters) {
		return nil
	}
	return &cb.Ctx.counters[n]
}

// GetState reads the per-packet scratch state slot.
func GetState(cb *ControlBlock) uint64 { return cb.State }

// SetState writes the per-packet scratch state slot.
func SetState(cb *ControlBlock, v uint64) { cb.State = v }

// precedenceLimiter rate-limits the diagnostics logged when Steal/ToKernel
// preconditions are violated (§7), the Go equivalent of the original's
// printk_ratelimit() guard.
var precedenceLimiter = diag.NewLimiter(1, 1)

// Copy sets the action to deliver the packet to this group's sockets.
func Copy(cb *ControlBlock) {
	cb.Action.Type = TypeCopy
}

// Drop sets the action to discard the packet for this group.
func Drop(cb *ControlBlock) {
	cb.Action.Type = TypeDrop
}

// Broadcast sets the action to copy with every class selected
// (ClassMask == ClassAny).
func Broadcast(cb *ControlBlock) {
	cb.Action.Type = TypeCopy
	cb.Action.ClassMask = ClassAny
}

// Class restricts delivery to the sockets whose class bits intersect m.
// Type is left untouched.
func Class(cb *ControlBlock, m uint64) {
	cb.Action.ClassMask = m
}

// Steering sets the action to steer the packet using hash h. ClassMask
// is left untouched.
func Steering(cb *ControlBlock, h uint32) {
	cb.Action.Type = TypeSteer
	cb.Action.Hash = h
}

// ClassSteering steers the packet using hash h, restricted to class m.
func ClassSteering(cb *ControlBlock, m uint64, h uint32) {
	cb.Action.Type = TypeSteer
	cb.Action.Hash = h
	cb.Action.ClassMask = m
}

// Stop asks the evaluator to cease further evaluation of this packet.
func Stop(cb *ControlBlock) {
	cb.Action.Attr |= AttrStop
}

// Steal marks the packet as taken out of the capture path. Stealing a
// packet already marked RetToKernel is a precedence violation (§7): the
// two outcomes are mutually exclusive, so Steal is a no-op in that case
// beyond a rate-limited diagnostic.
func Steal(cb *ControlBlock) {
	if cb.Action.Attr&AttrRetToKernel != 0 {
		precedenceLimiter.Warn("steal after to_kernel: ignoring, outcomes are mutually exclusive")
		return
	}
	cb.Action.Attr |= AttrStolen
}

// ToKernel asks for the packet to be returned to the kernel's normal
// processing path. Requesting this on a packet already marked Stolen is
// a precedence violation (§7), reported the same way as in [Steal].
func ToKernel(cb *ControlBlock) {
	if cb.Action.Attr&AttrStolen != 0 {
		precedenceLimiter.Warn("to_kernel after steal: ignoring, outcomes are mutually exclusive")
		return
	}
	cb.Action.Attr |= AttrRetToKernel
}

// IsDrop reports whether a is a drop action.
func IsDrop(a Action) bool { return a.Type == TypeDrop }

// IsCopy reports whether a is a copy (or broadcast) action.
func IsCopy(a Action) bool { return a.Type == TypeCopy }

// IsSteering reports whether a is a steer (or class_steering) action.
func IsSteering(a Action) bool { return a.Type == TypeSteer }

// HasStop reports whether a's Stop attribute is set.
func HasStop(a Action) bool { return a.Attr&AttrStop != 0 }

// HasStolen reports whether a's Stolen attribute is set.
func HasStolen(a Action) bool { return a.Attr&AttrStolen != 0 }

// HasRetToKernel reports whether a's RetToKernel attribute is set.
func HasRetToKernel(a Action) bool { return a.Attr&AttrRetToKernel != 0 }

// IsStolen is sugar for HasStolen(cb.Action), matching the original's
// is_stolen(skb) convenience predicate taken directly on the packet
// rather than on its action (§9 supplement).
func IsStolen(cb *ControlBlock) bool { return HasStolen(cb.Action) }
