package report

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/carbocation/quantcomp/quant"
	"github.com/carbocation/quantcomp/quantcorr"
)

// ScatterLog1p renders one sample's abundance in table a against the same
// sample in table b, over the features the two tables share, with a dashed
// y=x guide line. Axes are log1p-transformed, which keeps zero-abundance
// features on the plot while compressing the dynamic range TPM spans.
func ScatterLog1p(a, b *quant.Table, sample string, w io.Writer) error {
	ai, ok := a.SampleIndex(sample)
	if !ok {
		return quantcorr.SampleMismatchError{Sample: sample, PresentIn: b.Name, MissingFrom: a.Name}
	}
	bi, ok := b.SampleIndex(sample)
	if !ok {
		return quantcorr.SampleMismatchError{Sample: sample, PresentIn: a.Name, MissingFrom: b.Name}
	}

	var xs, ys []float64
	var max float64
	for ri, feature := range a.Features {
		bri, ok := b.FeatureIndex(feature)
		if !ok {
			continue
		}

		x := math.Log1p(a.Abundance[ai][ri])
		y := math.Log1p(b.Abundance[bi][bri])
		xs = append(xs, x)
		ys = append(ys, y)

		if x > max {
			max = x
		}
		if y > max {
			max = y
		}
	}

	if len(xs) == 0 {
		return quantcorr.EmptyIntersectionError{Sources: []string{a.Name, b.Name}}
	}

	if max == 0 {
		max = 1
	}

	graph := chart.Chart{
		Width:  600,
		Height: 600,
		Title:  fmt.Sprintf("%s: %s vs %s", sample, a.Name, b.Name),
		XAxis: chart.XAxis{
			Name: fmt.Sprintf("log1p TPM, %s", a.Name),
		},
		YAxis: chart.YAxis{
			Name: fmt.Sprintf("log1p TPM, %s", b.Name),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: sample,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeWidth:     1,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: []float64{0, max},
				YValues: []float64{0, max},
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
