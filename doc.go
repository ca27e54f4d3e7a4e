// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

// Package pfq provides the userspace embedded DSL for describing
// per-group packet-processing pipelines, and the serializer that lowers
// a pipeline into the flat, kernel-ingestible descriptor array the PFQ
// kernel module executes against each received packet.
//
// A pipeline is built as a typed AST of three sorts:
//
//   - M, a monadic function: transforms a packet, may be sequenced with
//     [Compose] and may embed predicates and other monadic functions.
//   - P, a predicate: a boolean test over a packet, combined with
//     [Not], [And], [Or] and [Xor].
//   - Q, a property: a 64-bit scalar extractor, used to build
//     property-lifted predicates.
//
// Composition uses [Compose] (the Kleisli arrow, written `>->` in the
// original PFQ-lang):
//
//	ip, err := NewMF0("ip")
//	udp, err := NewMF0("udp")
//	pipeline, err := Compose(ip, udp)
//
// Once built, a pipeline is lowered with [Serialize]:
//
//	descriptors, size := Serialize(pipeline, 0)
//
// descriptors is a flat []Descriptor ready to be handed to the kernel
// (the device ioctl/mmap handle that performs that handoff, and the
// kernel-side symbol table that resolves each Descriptor.Symbol, are
// both outside this package's scope — see DESIGN.md for the scope
// boundary).
//
// The action contract that every kernel-side function implementation
// observes (the per-packet control block, its mutators and predicates)
// lives in the sibling package [github.com/pfq-lang/pfq/action].
package pfq
