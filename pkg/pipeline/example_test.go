package pipeline_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/termplot/pkg/pipeline"
	"github.com/matzehuels/termplot/pkg/plot"
)

func ExampleRunner_Render() {
	runner, err := pipeline.NewRunner(pipeline.Options{
		Spec: plot.Spec{
			Rows: []plot.Row{
				{"x": 1.0, "y": 2.0},
				{"x": 2.0, "y": 4.0},
				{"x": 3.0, "y": 3.0},
			},
			Aes:    plot.Aes{plot.ChannelX: "x", plot.ChannelY: "y"},
			Layers: []plot.Layer{{Geom: "line"}},
		},
		Render: plot.RenderOptions{Width: 40, Height: 10, ColorMode: plot.ColorNone},
	})
	if err != nil {
		panic(err)
	}

	result, err := runner.Render(context.Background())
	if err != nil {
		panic(err)
	}
	fmt.Println(result.Stats.PanelCount, result.Stats.PointCount)
	// Output: 1 3
}
