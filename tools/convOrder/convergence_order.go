package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"github.com/notargets/tensorbasis/nodes"
	"github.com/notargets/tensorbasis/tensor"
)

var (
	csvFile  string
	dim      = 2
	maxOrder = 12
	numPTS   = 2000
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file to write the convergence study to, or read it from with -read")
	readPtr := flag.Bool("read", false, "print a study previously written to csvFile instead of computing one")
	dimPtr := flag.Int("dim", dim, "reference element dimension, 1 to 4")
	maxOrderPtr := flag.Int("maxOrder", maxOrder, "highest polynomial order in the study")
	numPTSPtr := flag.Int("numPTS", numPTS, "random sample points per order")
	flag.Parse()
	csvFile, dim, maxOrder, numPTS = *csvFilePtr, *dimPtr, *maxOrderPtr, *numPTSPtr
	var studies []*ConvergenceStudy
	if *readPtr {
		if len(csvFile) == 0 {
			flag.Usage()
			os.Exit(1)
		}
		fmt.Printf("Input file: %v\n", csvFile)
		studies = readCSV(csvFile)
	} else {
		for _, nt := range []nodes.NodeType{nodes.Equispaced, nodes.Chebyshev, nodes.Lobatto} {
			studies = append(studies, RunStudy(nt, dim, maxOrder, numPTS))
		}
		if len(csvFile) != 0 {
			writeCSV(csvFile, studies)
		}
	}
	for _, cs := range studies {
		fmt.Printf("Nodes = %s, Dim = %d\n", cs.title, cs.dim)
		for i := range cs.order {
			fmt.Printf("%d, %v, %v, %5.2f\n", cs.order[i], cs.errRMS[i], cs.errMAX[i], cs.Rate(i))
		}
	}
}

// ConvergenceStudy is the interpolation error of one node family over a
// range of orders.
type ConvergenceStudy struct {
	title          string
	dim            int
	order          []int
	errRMS, errMAX []float64
}

func NewConvergenceStudy(title string, dim int) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		dim:   dim,
	}
}

func (cs *ConvergenceStudy) Add(order int, errRMS, errMAX float64) {
	cs.order = append(cs.order, order)
	cs.errRMS = append(cs.errRMS, errRMS)
	cs.errMAX = append(cs.errMAX, errMAX)
}

// Rate is the decay of the max error per unit order, -log10(e_i/e_{i-1}).
func (cs *ConvergenceStudy) Rate(i int) float64 {
	if i == 0 || cs.errMAX[i] == 0 || cs.errMAX[i-1] == 0 {
		return 0
	}
	return -math.Log10(cs.errMAX[i]/cs.errMAX[i-1]) / float64(cs.order[i]-cs.order[i-1])
}

// testFunction is smooth but not polynomial, so the error decays with order
// until it reaches round off.
func testFunction(x []float64) (f float64) {
	f = 1
	for d, xd := range x {
		f *= math.Exp(0.5*xd) * math.Cos(float64(d+1)*xd)
	}
	return
}

// RunStudy interpolates testFunction at the nodes of each order and measures
// the error at random points through the sparse interpolation operator.
func RunStudy(nt nodes.NodeType, dim, maxOrder, numPTS int) (cs *ConvergenceStudy) {
	var (
		rnd    = rand.New(rand.NewSource(1))
		points = make([][]float64, numPTS)
	)
	for k := range points {
		points[k] = make([]float64, dim)
		for d := range points[k] {
			points[k][d] = -1 + 2*rnd.Float64()
		}
	}
	cs = NewConvergenceStudy(string(nt), dim)
	for order := 1; order <= maxOrder; order++ {
		ns, err := nodes.Generate(nt, order+1)
		if err != nil {
			panic(err)
		}
		b, err := tensor.NewIsotropic[float64](dim, ns)
		if err != nil {
			panic(err)
		}
		X := b.ReferenceNodes()
		coeffs := make([]float64, len(X))
		for i, x := range X {
			coeffs[i] = testFunction(x)
		}
		op, err := tensor.InterpolationOperator(b, points)
		if err != nil {
			panic(err)
		}
		u, err := tensor.Interpolate(op, coeffs)
		if err != nil {
			panic(err)
		}
		var rms, emax float64
		for k, x := range points {
			e := math.Abs(u[k] - testFunction(x))
			rms += e * e
			emax = math.Max(emax, e)
		}
		cs.Add(order, math.Sqrt(rms/float64(numPTS)), emax)
	}
	return
}

func writeCSV(csvFile string, studies []*ConvergenceStudy) {
	var (
		err error
		f   *os.File
	)
	if f, err = os.Create(csvFile); err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(bufio.NewWriter(f))
	_ = w.Write([]string{"nodes", "dim", "order", "errRMS", "errMAX"})
	for _, cs := range studies {
		for i := range cs.order {
			_ = w.Write([]string{cs.title, strconv.Itoa(cs.dim), strconv.Itoa(cs.order[i]),
				strconv.FormatFloat(cs.errRMS[i], 'e', -1, 64),
				strconv.FormatFloat(cs.errMAX[i], 'e', -1, 64)})
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		panic(err)
	}
}

func readCSV(csvFile string) (studies []*ConvergenceStudy) {
	var (
		records [][]string
		err     error
		f       *os.File
		byTitle = make(map[string]*ConvergenceStudy)
	)
	if f, err = os.Open(csvFile); err != nil {
		panic(err)
	}
	defer f.Close()
	r := csv.NewReader(bufio.NewReader(f))
	if records, err = r.ReadAll(); err != nil {
		panic(err)
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		title, dimtxt, ordertxt := rec[0], rec[1], rec[2]
		d, _ := strconv.Atoi(dimtxt)
		n, _ := strconv.Atoi(ordertxt)
		cs, ok := byTitle[title+dimtxt]
		if !ok {
			cs = NewConvergenceStudy(title, d)
			byTitle[title+dimtxt] = cs
			studies = append(studies, cs)
		}
		errRMS, _ := strconv.ParseFloat(rec[3], 64)
		errMAX, _ := strconv.ParseFloat(rec[4], 64)
		cs.Add(n, errRMS, errMAX)
	}
	return
}
