package datatable_test

import (
	"bytes"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/whatif/internal/datatable"
	"github.com/san-kum/whatif/internal/whatif"
)

var _ = Describe("Table", func() {
	tbl := &datatable.Table{
		Inputs:  []string{"selling_price"},
		Outputs: []string{"profit", "demand"},
		Rows: []datatable.Row{
			{Inputs: []float64{80}, Outputs: []float64{-1000, 2500}},
			{Inputs: []float64{90}, Outputs: []float64{500, 2200}},
		},
	}

	It("converts to columns and back", func() {
		cols := tbl.ToColumns()
		Expect(cols).To(HaveLen(3))
		Expect(cols[1]).To(Equal(datatable.Column{Name: "profit", Values: []float64{-1000, 500}}))

		back, err := datatable.FromColumns(tbl.Inputs, tbl.Outputs, cols)
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(Equal(tbl))
	})

	It("flattens records in column order", func() {
		Expect(tbl.Record(1)).To(Equal([]float64{90, 500, 2200}))
	})

	It("rejects an unknown column", func() {
		_, err := tbl.Column("revenue")
		Expect(err).To(MatchError(whatif.ErrConfiguration))
	})

	It("rejects mismatched columns", func() {
		_, err := datatable.FromColumns([]string{"a"}, []string{"b"}, []datatable.Column{
			{Name: "a", Values: []float64{1, 2}},
			{Name: "b", Values: []float64{1}},
		})
		Expect(err).To(HaveOccurred())

		_, err = datatable.FromColumns([]string{"a"}, []string{"b"}, []datatable.Column{
			{Name: "b", Values: []float64{1}},
			{Name: "a", Values: []float64{1}},
		})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ranges", func() {
	It("Arange excludes the stop value", func() {
		vals, err := datatable.Arange(80, 141, 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(Equal([]float64{80, 90, 100, 110, 120, 130, 140}))
	})

	It("Arange counts down with a negative step", func() {
		vals, err := datatable.Arange(3, 0, -1)
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(Equal([]float64{3, 2, 1}))
	})

	It("Arange rejects a zero step", func() {
		_, err := datatable.Arange(0, 1, 0)
		Expect(err).To(HaveOccurred())
	})

	It("Linspace includes both ends", func() {
		vals, err := datatable.Linspace(0, 1, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})
	DescribeTable("refuse more than MaxRows values",
		func(gen func() ([]float64, error)) {
			vals, err := gen()
			Expect(err).To(MatchError(whatif.ErrConfiguration))
			Expect(vals).To(BeNil())
		},
		Entry("Arange over a huge span", func() ([]float64, error) { return datatable.Arange(0, 1e16, 1) }),
		Entry("Arange to infinity", func() ([]float64, error) { return datatable.Arange(0, math.Inf(1), 1) }),
		Entry("Linspace with a huge count", func() ([]float64, error) { return datatable.Linspace(0, 1, datatable.MaxRows+1) }),
	)

	It("Arange accepts exactly MaxRows values", func() {
		vals, err := datatable.Arange(0, datatable.MaxRows, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(vals).To(HaveLen(datatable.MaxRows))
	})
})

var _ = Describe("CSV", func() {
	It("round-trips a table", func() {
		tbl := &datatable.Table{
			Inputs:  []string{"selling_price", "var_cost"},
			Outputs: []string{"profit"},
			Rows: []datatable.Row{
				{Inputs: []float64{80, 100}, Outputs: []float64{-0.1}},
				{Inputs: []float64{90, 100}, Outputs: []float64{1.0 / 3.0}},
			},
		}

		var buf bytes.Buffer
		Expect(datatable.WriteCSV(&buf, tbl)).To(Succeed())
		Expect(buf.String()).To(HavePrefix("selling_price,var_cost,profit\n80,100,-0.1\n"))

		back, err := datatable.ReadCSV(&buf, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(Equal(tbl))
	})

	It("rejects malformed numbers", func() {
		_, err := datatable.ReadCSV(strings.NewReader("a,b\n1,x\n"), 1)
		Expect(err).To(HaveOccurred())
	})
})
