package datatable_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/models"
	"github.com/san-kum/whatif/internal/whatif"
)

var _ = Describe("Run", func() {
	var inst *whatif.Instance

	BeforeEach(func() {
		var err error
		inst, err = models.NewSingleProductSPF().New(nil)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("one-way table", func() {
		var prices []float64

		BeforeEach(func() {
			var err error
			prices, err = datatable.Arange(80, 141, 10)
			Expect(err).NotTo(HaveOccurred())
		})

		It("has one row per swept value in the given order", func() {
			tbl, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price", Values: prices}}, []string{"profit", "demand"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Len()).To(Equal(len(prices)))
			Expect(tbl.Columns()).To(Equal([]string{"selling_price", "profit", "demand"}))

			col, err := tbl.Column("selling_price")
			Expect(err).NotTo(HaveOccurred())
			Expect(col).To(Equal(prices))
		})

		It("records exactly what direct evaluation returns", func() {
			tbl, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price", Values: prices}}, []string{"profit", "demand"})
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < tbl.Len(); i++ {
				p := inst.Snapshot()
				p["selling_price"] = tbl.Rows[i].Inputs[0]
				profit, err := inst.EvalWith(p, "profit")
				Expect(err).NotTo(HaveOccurred())
				demand, err := inst.EvalWith(p, "demand")
				Expect(err).NotTo(HaveOccurred())
				Expect(tbl.Rows[i].Outputs).To(Equal([]float64{profit, demand}))
			}
		})

		It("leaves the instance untouched", func() {
			before := inst.Params()
			_, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price", Values: prices}}, []string{"profit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Params()).To(Equal(before))
		})

		It("keeps duplicates and order", func() {
			tbl, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price", Values: []float64{120, 90, 120}}}, []string{"demand"})
			Expect(err).NotTo(HaveOccurred())
			col, _ := tbl.Column("selling_price")
			Expect(col).To(Equal([]float64{120, 90, 120}))
			Expect(tbl.Rows[0].Outputs).To(Equal(tbl.Rows[2].Outputs))
		})

		It("uses the instance's current values for the other params", func() {
			Expect(inst.Set("fixed_cost", 0)).To(Succeed())
			tbl, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price", Values: []float64{100}}}, []string{"profit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Rows[0].Outputs[0]).To(BeNumerically("~", 0, 1e-9))
		})

		It("sweeps a pinned output", func() {
			tbl, err := datatable.Run(inst, []datatable.Input{{Name: "demand", Values: []float64{0, 1000}}}, []string{"profit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Rows[0].Outputs[0]).To(BeNumerically("~", -5000, 1e-9))
			Expect(tbl.Rows[1].Outputs[0]).To(BeNumerically("~", 10000, 1e-9))
		})

		It("returns an empty table for an empty sweep", func() {
			tbl, err := datatable.Run(inst, []datatable.Input{{Name: "selling_price"}}, []string{"profit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Len()).To(BeZero())
		})
	})

	Context("n-way table", func() {
		It("enumerates the product with the first input outermost", func() {
			tbl, err := datatable.Run(inst, []datatable.Input{
				{Name: "selling_price", Values: []float64{100, 120}},
				{Name: "var_cost", Values: []float64{80, 90, 100}},
			}, []string{"profit"})
			Expect(err).NotTo(HaveOccurred())
			Expect(tbl.Len()).To(Equal(6))

			var got [][]float64
			for _, r := range tbl.Rows {
				got = append(got, r.Inputs)
			}
			Expect(got).To(Equal([][]float64{
				{100, 80}, {100, 90}, {100, 100},
				{120, 80}, {120, 90}, {120, 100},
			}))
			Expect(tbl.Assignment(4)).To(Equal(whatif.Params{"selling_price": 120, "var_cost": 90}))
		})
	})

	Context("invalid requests", func() {
		DescribeTable("fail with a configuration error",
			func(inputs []datatable.Input, outputs []string) {
				tbl, err := datatable.Run(inst, inputs, outputs)
				Expect(err).To(MatchError(whatif.ErrConfiguration))
				Expect(tbl).To(BeNil())
			},
			Entry("unknown input", []datatable.Input{{Name: "price", Values: []float64{1}}}, []string{"profit"}),
			Entry("unknown output", []datatable.Input{{Name: "selling_price", Values: []float64{1}}}, []string{"margin"}),
			Entry("duplicate input", []datatable.Input{
				{Name: "selling_price", Values: []float64{1}},
				{Name: "selling_price", Values: []float64{2}},
			}, []string{"profit"}),
			Entry("no inputs", nil, []string{"profit"}),
			Entry("no outputs", []datatable.Input{{Name: "selling_price", Values: []float64{1}}}, nil),
		)

		It("refuses a product of value counts above MaxRows", func() {
			vals := make([]float64, 1<<16)
			huge := []datatable.Input{
				{Name: "selling_price", Values: vals},
				{Name: "var_cost", Values: vals},
				{Name: "fixed_cost", Values: vals},
				{Name: "spf_constant", Values: vals},
			}

			tbl, err := datatable.Run(inst, huge, []string{"profit"})
			Expect(err).To(MatchError(whatif.ErrConfiguration))
			Expect(tbl).To(BeNil())

			tbl, err = datatable.RunParallel(context.Background(), inst, huge, []string{"profit"}, 4)
			Expect(err).To(MatchError(whatif.ErrConfiguration))
			Expect(tbl).To(BeNil())
		})
	})
})
