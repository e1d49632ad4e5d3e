package goalseek_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/whatif/internal/goalseek"
	"github.com/san-kum/whatif/internal/models"
	"github.com/san-kum/whatif/internal/whatif"
)

var _ = Describe("Solve", func() {
	var inst *whatif.Instance

	BeforeEach(func() {
		var err error
		inst, err = models.NewSingleProductSPF().New(nil)
		Expect(err).NotTo(HaveOccurred())
	})

	breakEvenDemand := goalseek.Spec{
		Output:        "profit",
		Target:        0,
		Input:         "demand",
		Lower:         0,
		Upper:         1000,
		MaxIterations: 1000,
	}

	It("finds the break-even demand", func() {
		res, err := goalseek.Solve(inst, breakEvenDemand)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Converged).To(BeTrue())
		Expect(res.Value).To(BeNumerically("~", 1000.0/3.0, 1e-3))
		Expect(math.Abs(res.Residual)).To(BeNumerically("<=", goalseek.DefaultTolerance))
		Expect(res.Iterations).To(BeNumerically(">", 0))
	})

	It("does not pin the input on the instance", func() {
		before := inst.Params()
		_, err := goalseek.Solve(inst, breakEvenDemand)
		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Params()).To(Equal(before))
		Expect(inst.IsPinned("demand")).To(BeFalse())
	})

	It("honours a custom tolerance", func() {
		spec := breakEvenDemand
		spec.Tolerance = 1
		res, err := goalseek.Solve(inst, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.Abs(res.Residual)).To(BeNumerically("<=", 1))
	})

	It("returns a bound that already meets the target", func() {
		spec := breakEvenDemand
		spec.Target = -5000
		res, err := goalseek.Solve(inst, spec)
		Expect(err).NotTo(HaveOccurred())
		Expect(res).To(Equal(goalseek.Result{Value: 0, Residual: 0, Iterations: 0, Converged: true}))
	})

	It("solves for a non-zero target", func() {
		be, err := models.NewBreakEven().New(nil)
		Expect(err).NotTo(HaveOccurred())

		res, err := goalseek.Solve(be, goalseek.Spec{
			Output: "profit", Target: 1000, Input: "demand", Lower: 0, Upper: 10000,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Value).To(BeNumerically("~", 400, 1e-6))
	})

	It("reports a missing bracket instead of a wrong root", func() {
		be, err := models.NewBreakEven().New(whatif.Params{"selling_price": 101, "var_cost": 100})
		Expect(err).NotTo(HaveOccurred())

		_, err = goalseek.Solve(be, goalseek.Spec{
			Output: "profit", Target: 0, Input: "demand", Lower: 0, Upper: 1,
		})
		Expect(err).To(MatchError(whatif.ErrNoBracket))

		var nb *whatif.NoBracketError
		Expect(errors.As(err, &nb)).To(BeTrue())
		Expect(nb.FLower).To(BeNumerically("~", -5000, 1e-9))
		Expect(nb.FUpper).To(BeNumerically("~", -4999, 1e-9))
	})

	It("reports exhaustion of the iteration budget", func() {
		spec := breakEvenDemand
		spec.MaxIterations = 3
		spec.Tolerance = 1e-12

		res, err := goalseek.Solve(inst, spec)
		Expect(err).To(MatchError(whatif.ErrNotConverged))
		Expect(res.Converged).To(BeFalse())

		var ce *whatif.ConvergenceError
		Expect(errors.As(err, &ce)).To(BeTrue())
		Expect(ce.Iterations).To(Equal(3))
		Expect(ce.Best).To(BeNumerically("~", 375, 1e-9))
		Expect(ce.Residual).To(BeNumerically("~", 625, 1e-6))
	})

	It("reports non-finite residuals", func() {
		m := whatif.NewModel("inverse").
			Param("x", 1, "").
			Output("inv", func(v whatif.Values) float64 { return 1 / v.Get("x") }, "")
		in, err := m.New(nil)
		Expect(err).NotTo(HaveOccurred())

		_, err = goalseek.Solve(in, goalseek.Spec{Output: "inv", Target: 2, Input: "x", Lower: 0, Upper: 1})
		Expect(err).To(MatchError(whatif.ErrNonFinite))
	})

	DescribeTable("rejects invalid specs",
		func(mutate func(*goalseek.Spec)) {
			spec := breakEvenDemand
			mutate(&spec)
			_, err := goalseek.Solve(inst, spec)
			Expect(err).To(MatchError(whatif.ErrConfiguration))
		},
		Entry("unknown output", func(s *goalseek.Spec) { s.Output = "margin" }),
		Entry("unknown input", func(s *goalseek.Spec) { s.Input = "price" }),
		Entry("input equals output", func(s *goalseek.Spec) { s.Input = "profit" }),
		Entry("inverted bounds", func(s *goalseek.Spec) { s.Lower, s.Upper = 1000, 0 }),
		Entry("negative budget", func(s *goalseek.Spec) { s.MaxIterations = -1 }),
		Entry("negative tolerance", func(s *goalseek.Spec) { s.Tolerance = -1 }),
	)
})
