package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/carbocation/pfx"

	"github.com/carbocation/quantcomp/quantcorr"
)

// Boxplot renders the distribution of per-sample coefficients for each
// comparison as one box per comparison, and saves the figure to path. The
// image format follows the path's extension; .png is conventional.
func Boxplot(results []quantcorr.Result, path string) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to plot")
	}

	pairs := pairOrder(results)

	byPair := make(map[string]plotter.Values, len(pairs))
	for _, r := range results {
		byPair[r.Pair()] = append(byPair[r.Pair()], r.Rho)
	}

	p := plot.New()
	p.Title.Text = "Spearman correlation between quantifiers"
	p.Y.Label.Text = "Spearman rho"
	p.NominalX(pairs...)

	for i, pair := range pairs {
		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), byPair[pair])
		if err != nil {
			return pfx.Err(fmt.Errorf("%s: %w", pair, err))
		}
		p.Add(box)
	}

	return pfx.Err(p.Save(6*vg.Inch, 4*vg.Inch, path))
}
