// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package pfq

import (
	"fmt"

	"github.com/pfq-lang/pfq/internal/diag"
)

// Serialize lowers an AST rooted at node (an [MNode], [PNode] or
// [QNode]) into a flat array of [Descriptor] values, starting at index
// n (§4.4). It returns the descriptors and n', the first index not used
// by this subtree; a top-level call passes n == 0, as in
// `Serialize(pipeline, 0)`.
//
// Serialize is pure and total over any AST built through this
// package's constructors (§7: "serialization cannot fail"); it performs
// a single preorder walk with no backtracking, O(size) in time and
// space (§4.4 "Performance").
//
// node must be one of this package's MNode/PNode/QNode implementations;
// since those interfaces are only satisfiable from inside this package,
// any value that fails the type switch below was not built through a
// constructor here, which is a programming error, not a data error —
// Serialize panics in that case rather than returning a zero value that
// would silently corrupt a kernel submission.
func Serialize(node any, n uint) ([]Descriptor, uint) {
	switch v := node.(type) {
	case MNode:
		return serializeM(v, n)
	case PNode:
		return serializeP(v, n)
	case QNode:
		return serializeQ(v, n)
	default:
		panic(fmt.Sprintf("pfq: Serialize: %T is not an M/P/Q AST node", node))
	}
}

// embedM serializes a monadic child that is embedded as a higher-order
// argument (MFf/MFff/MFpf/MFpff's Inner/First/Second/Then/Else) rather
// than sequenced by Kleisli composition. Per §4.4's next-field
// convention, such a child's trailing descriptor must not implicitly
// continue into the parent's sequence — the kernel resumes control at
// the parent, not by falling through the child — so the last emitted
// descriptor's Next is forced to [TerminalNext] regardless of what the
// child's own leaf-link rule would otherwise produce.
func embedM(child MNode, n uint) ([]Descriptor, uint) {
	descs, nPrime := serializeM(child, n)
	if len(descs) > 0 {
		descs[len(descs)-1].Next = TerminalNext
	}
	return descs, nPrime
}

func serializeM(node MNode, n uint) ([]Descriptor, uint) {
	switch v := node.(type) {
	case MF0:
		diag.TraceIndex(v.Symbol, n)
		return []Descriptor{{Symbol: v.Symbol, Next: n + 1}}, n + 1

	case MF1:
		diag.TraceIndex(v.Symbol, n)
		return []Descriptor{{Symbol: v.Symbol, Arg: [4]Argument{v.Arg}, Next: n + 1}}, n + 1

	case MF2:
		diag.TraceIndex(v.Symbol, n)
		return []Descriptor{{Symbol: v.Symbol, Arg: [4]Argument{v.Arg0, v.Arg1}, Next: n + 1}}, n + 1

	case MFp:
		diag.TraceIndex(v.Symbol, n)
		predDescs, n1 := serializeP(v.Pred, n+1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1)}, Next: n1}
		return append([]Descriptor{d}, predDescs...), n1

	case MF1p:
		diag.TraceIndex(v.Symbol, n)
		predDescs, n1 := serializeP(v.Pred, n+1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{v.Arg, ArgFun(n + 1)}, Next: n1}
		return append([]Descriptor{d}, predDescs...), n1

	case MFpf:
		diag.TraceIndex(v.Symbol, n)
		predDescs, n1 := serializeP(v.Pred, n+1)
		thenDescs, n2 := embedM(v.Then, n1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1), ArgFun(n1)}, Next: n2}
		out := append([]Descriptor{d}, predDescs...)
		out = append(out, thenDescs...)
		return out, n2

	case MFpff:
		diag.TraceIndex(v.Symbol, n)
		predDescs, n1 := serializeP(v.Pred, n+1)
		thenDescs, n2 := embedM(v.Then, n1)
		elseDescs, n3 := embedM(v.Else, n2)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1), ArgFun(n1), ArgFun(n2)}, Next: n3}
		out := append([]Descriptor{d}, predDescs...)
		out = append(out, thenDescs...)
		out = append(out, elseDescs...)
		return out, n3

	case MFf:
		diag.TraceIndex(v.Symbol, n)
		innerDescs, n1 := embedM(v.Inner, n+1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1)}, Next: n1}
		return append([]Descriptor{d}, innerDescs...), n1

	case MFff:
		diag.TraceIndex(v.Symbol, n)
		firstDescs, n1 := embedM(v.First, n+1)
		secondDescs, n2 := embedM(v.Second, n1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1), ArgFun(n1)}, Next: n2}
		out := append([]Descriptor{d}, firstDescs...)
		out = append(out, secondDescs...)
		return out, n2

	case Comp:
		// Kleisli sequencing: the last link of f's monadic sequence (the
		// root descriptor of its final step) already has Next == n1 (g's
		// start index) by the leaf-link rule, giving sequential linkage
		// "for free" — no descriptor is emitted for Comp itself.
		vf, n1 := serializeM(v.First, n)
		vg, n2 := serializeM(v.Second, n1)
		return append(vf, vg...), n2

	default:
		panic(fmt.Sprintf("pfq: serializeM: unhandled MNode %T", node))
	}
}

func serializeP(node PNode, n uint) ([]Descriptor, uint) {
	switch v := node.(type) {
	case P0:
		return []Descriptor{{Symbol: v.Symbol, Next: TerminalNext}}, n + 1

	case P1:
		return []Descriptor{{Symbol: v.Symbol, Arg: [4]Argument{v.Arg}, Next: TerminalNext}}, n + 1

	case P2:
		return []Descriptor{{Symbol: v.Symbol, Arg: [4]Argument{v.Arg0, v.Arg1}, Next: TerminalNext}}, n + 1

	case Pr:
		propDescs, n1 := serializeQ(v.Prop, n+1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1)}, Next: TerminalNext}
		return append([]Descriptor{d}, propDescs...), n1

	case Pr1:
		propDescs, n1 := serializeQ(v.Prop, n+1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1), v.Arg}, Next: TerminalNext}
		return append([]Descriptor{d}, propDescs...), n1

	case Cmb1:
		predDescs, n1 := serializeP(v.Pred, n+1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1)}, Next: TerminalNext}
		return append([]Descriptor{d}, predDescs...), n1

	case Cmb2:
		leftDescs, n1 := serializeP(v.Left, n+1)
		rightDescs, n2 := serializeP(v.Right, n1)
		d := Descriptor{Symbol: v.Symbol, Arg: [4]Argument{ArgFun(n + 1), ArgFun(n1)}, Next: TerminalNext}
		out := append([]Descriptor{d}, leftDescs...)
		out = append(out, rightDescs...)
		return out, n2

	default:
		panic(fmt.Sprintf("pfq: serializeP: unhandled PNode %T", node))
	}
}

func serializeQ(node QNode, n uint) ([]Descriptor, uint) {
	switch v := node.(type) {
	case Q0:
		return []Descriptor{{Symbol: v.Symbol, Next: TerminalNext}}, n + 1

	case Q1:
		return []Descriptor{{Symbol: v.Symbol, Arg: [4]Argument{v.Arg}, Next: TerminalNext}}, n + 1

	default:
		panic(fmt.Sprintf("pfq: serializeQ: unhandled QNode %T", node))
	}
}
