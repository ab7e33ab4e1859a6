// Command dtw computes DTW distances, alignments, and sliding-search
// distance profiles between time series stored as CSV files (one sample per
// row; multiple columns form multivariate samples).
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/nozzle/dtw"
	"github.com/nozzle/dtw/align"
	"github.com/nozzle/dtw/distance"
	"github.com/nozzle/dtw/norm"
	"github.com/nozzle/dtw/search"
)

func main() {
	// Parse command-line flags
	queryFile := flag.String("query", "", "Query/first sequence CSV file (required)")
	targetFile := flag.String("target", "", "Target/second sequence CSV file (required)")
	kernel := flag.String("kernel", "exact", "Kernel: exact, soft, fast, or search")
	inner := flag.String("inner", "sqeuclidean", "Pointwise inner distance")
	radius := flag.Int("radius", -1, "Sakoe-Chiba band radius (-1 = unconstrained)")
	transportCost := flag.Float64("transport-cost", 1.0, "Non-diagonal move multiplier (exact/search)")
	gamma := flag.Float64("gamma", 1.0, "Smoothing strength (soft)")
	normalize := flag.Bool("normalize", false, "Z-normalize sequences (per window for search)")
	showPath := flag.Bool("path", false, "Print the alignment path (exact/fast)")
	profileFile := flag.String("profile", "", "Output CSV for the search distance profile")
	pruneEndpoints := flag.Bool("prune-endpoints", false, "Enable endpoint pruning (search)")
	topK := flag.Int("k", 1, "Number of best matches to report (search)")
	workers := flag.Int("workers", 0, "Worker goroutines for search (0 = auto)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	if *queryFile == "" || *targetFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -query and -target flags are required")
		flag.Usage()
		os.Exit(1)
	}

	dist, ok := distance.GetVec(*inner)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown inner distance %q\n", *inner)
		os.Exit(1)
	}

	x, err := loadCSV(*queryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading query: %v\n", err)
		os.Exit(1)
	}
	y, err := loadCSV(*targetFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading target: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded %d and %d samples of width %d\n", len(x), len(y), len(x[0]))
	}

	r := *radius
	if r < 0 {
		r = align.FullCoverage
	}

	// The kernels consume already-normalized data; search normalizes per
	// window itself.
	if *normalize && *kernel != "search" {
		x = norm.ZScoreVec(x)
		y = norm.ZScoreVec(y)
	}

	switch *kernel {
	case "exact":
		metric := dtw.NewExact(dist)
		metric.Radius = r
		metric.TransportCost = *transportCost
		runPair(metric, x, y, *showPath)

	case "soft":
		metric := dtw.NewSoft(dist, *gamma)
		metric.Radius = r
		cost, err := metric.Distance(x, y)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("cost: %g\n", cost)

	case "fast":
		fastRadius := *radius
		if fastRadius < 0 {
			fastRadius = 1
		}
		runPair(dtw.NewFast(dist, align.VectorMean, fastRadius), x, y, *showPath)

	case "search":
		opts := search.DefaultOptions[[]float64]()
		opts.Radius = r
		opts.TransportCost = *transportCost
		opts.PruneEndpoints = *pruneEndpoints
		opts.SaveAll = *profileFile != ""
		opts.TopK = *topK
		opts.NumWorkers = *workers
		if *normalize {
			opts.Normalize = norm.ZScoreVec
		}

		res, err := search.Profile(x, y, dist, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		for _, m := range res.Matches {
			fmt.Printf("offset: %d cost: %g\n", m.Offset, m.Cost)
		}
		if *verbose {
			fmt.Printf("pruned %d of %d offsets\n", res.Pruned, len(y)-len(x)+1)
		}
		if *profileFile != "" {
			if err := saveProfile(*profileFile, res.Profile); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
				os.Exit(1)
			}
			if *verbose {
				fmt.Printf("Saved profile to %s\n", *profileFile)
			}
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown kernel %q\n", *kernel)
		os.Exit(1)
	}
}

// pathMetric is implemented by the kernels that can recover an alignment path.
type pathMetric interface {
	Distance(x, y [][]float64) (float64, error)
	Path(x, y [][]float64) (float64, []align.Step, error)
}

func runPair(metric pathMetric, x, y [][]float64, showPath bool) {
	if showPath {
		cost, path, err := metric.Path(x, y)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("cost: %g\n", cost)
		for _, st := range path {
			fmt.Printf("%d,%d\n", st.I, st.J)
		}
		return
	}
	cost, err := metric.Distance(x, y)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("cost: %g\n", cost)
}

// loadCSV loads a sequence from a CSV file (no header, numeric values only).
func loadCSV(filename string) ([][]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	data := make([][]float64, len(records))
	for i, record := range records {
		data[i] = make([]float64, len(record))
		for j, val := range record {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, col %d: %v", i, j, err)
			}
			data[i][j] = f
		}
	}

	return data, nil
}

// saveProfile saves a distance profile to a single-column CSV file.
func saveProfile(filename string, profile []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	for _, v := range profile {
		if err := writer.Write([]string{strconv.FormatFloat(v, 'f', 6, 64)}); err != nil {
			return err
		}
	}

	return nil
}
