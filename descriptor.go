// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package pfq

import "fmt"

// TerminalNext is the sentinel Next value meaning "no continuation":
// the kernel stops following the monadic sequence at this descriptor.
// It is the all-ones value in the same index space as FunRef (§3, §6).
const TerminalNext = ^uint(0)

// Descriptor is the flat, kernel-ingestible node produced by [Serialize]:
// a symbol naming a kernel-side implementation, up to four arguments
// (unused slots are [ArgNull]), and a Next index continuing the monadic
// sequence (or [TerminalNext]).
//
// A Descriptor at position k in a serialized array is referred to by
// other descriptors via [ArgFun](k).
type Descriptor struct {
	Symbol string
	Arg    [4]Argument
	Next   uint
}

// String renders a Descriptor for diagnostics, e.g.
// `when [f[1] f[2]] -> 3`. Never used by [Serialize] itself.
func (d Descriptor) String() string {
	next := "-"
	if d.Next != TerminalNext {
		next = fmt.Sprintf("%d", d.Next)
	}

	args := make([]string, 0, 4)
	for _, a := range d.Arg {
		if a.IsNull() {
			continue
		}
		args = append(args, a.String())
	}

	return fmt.Sprintf("%s %v -> %s", d.Symbol, args, next)
}
