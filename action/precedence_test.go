// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package action_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pfq-lang/pfq/action"
)

// Testable property 6 (§8): steal after to_kernel leaves attr ==
// RET_TO_KERNEL (STOLEN not set); to_kernel after steal leaves
// attr == STOLEN (RET_TO_KERNEL not set).
var _ = Describe("Steal/ToKernel precedence", func() {
	var cb *action.ControlBlock

	BeforeEach(func() {
		cb = action.NewControlBlock(action.NewGroupContext(4))
	})

	Context("steal requested after to_kernel", func() {
		It("keeps RetToKernel and ignores Stolen", func() {
			action.ToKernel(cb)
			action.Steal(cb)

			Expect(action.HasRetToKernel(cb.Action)).To(BeTrue())
			Expect(action.HasStolen(cb.Action)).To(BeFalse())
		})
	})

	Context("to_kernel requested after steal", func() {
		It("keeps Stolen and ignores RetToKernel", func() {
			action.Steal(cb)
			action.ToKernel(cb)

			Expect(action.HasStolen(cb.Action)).To(BeTrue())
			Expect(action.HasRetToKernel(cb.Action)).To(BeFalse())
		})
	})

	Context("steal with no prior to_kernel", func() {
		It("sets Stolen", func() {
			action.Steal(cb)
			Expect(action.HasStolen(cb.Action)).To(BeTrue())
		})
	})

	Context("to_kernel with no prior steal", func() {
		It("sets RetToKernel", func() {
			action.ToKernel(cb)
			Expect(action.HasRetToKernel(cb.Action)).To(BeTrue())
		})
	})

	Context("Stop", func() {
		It("is independent of Steal/ToKernel precedence", func() {
			action.Steal(cb)
			action.Stop(cb)

			Expect(action.HasStolen(cb.Action)).To(BeTrue())
			Expect(action.HasStop(cb.Action)).To(BeTrue())
		})
	})
})
