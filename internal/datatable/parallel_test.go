package datatable_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/models"
	"github.com/san-kum/whatif/internal/whatif"
)

var _ = Describe("RunParallel", func() {
	var (
		inst  *whatif.Instance
		sweep []datatable.Input
	)

	BeforeEach(func() {
		var err error
		inst, err = models.NewSingleProductSPF().New(nil)
		Expect(err).NotTo(HaveOccurred())

		prices, err := datatable.Arange(80, 141, 10)
		Expect(err).NotTo(HaveOccurred())
		sweep = []datatable.Input{
			{Name: "selling_price", Values: prices},
			{Name: "var_cost", Values: []float64{85, 100, 115}},
			{Name: "fixed_cost", Values: []float64{4000, 5000}},
		}
	})

	DescribeTable("matches the sequential table",
		func(workers int) {
			want, err := datatable.Run(inst, sweep, []string{"profit", "demand"})
			Expect(err).NotTo(HaveOccurred())

			got, err := datatable.RunParallel(context.Background(), inst, sweep, []string{"profit", "demand"}, workers)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("one worker", 1),
		Entry("four workers", 4),
		Entry("more workers than rows", 100),
	)

	It("validates like Run", func() {
		_, err := datatable.RunParallel(context.Background(), inst, []datatable.Input{{Name: "price", Values: []float64{1}}}, []string{"profit"}, 4)
		Expect(err).To(MatchError(whatif.ErrConfiguration))
	})

	It("stops on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := datatable.RunParallel(ctx, inst, sweep, []string{"profit"}, 4)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("returns an empty table when a sweep is empty", func() {
		tbl, err := datatable.RunParallel(context.Background(), inst, []datatable.Input{{Name: "selling_price"}}, []string{"profit"}, 4)
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Len()).To(BeZero())
	})
})
