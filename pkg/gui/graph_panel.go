package gui

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/jesseduffield/asciigraph"
	"github.com/mcuadros/go-lookup"
	"github.com/s-hammon/lazyrng/pkg/config"
	"github.com/s-hammon/lazyrng/pkg/utils"
	"github.com/samber/lo"
)

func (gui *Gui) toggleGraph() error {
	gui.Mutexes.StateMutex.Lock()
	gui.State.ShowGraph = !gui.State.ShowGraph
	showGraph := gui.State.ShowGraph
	gui.Mutexes.StateMutex.Unlock()

	if showGraph {
		gui.Views.Data.Title = gui.Tr.HistoryTitle
	} else {
		gui.Views.Data.Title = gui.Tr.UpcomingTitle
	}

	gui.renderDataPanel()
	return nil
}

// renderGraphPanel plots the recorded samples according to the configured
// graph specs.
func (gui *Gui) renderGraphPanel() {
	width, _ := gui.Views.Data.Size()

	gui.Mutexes.StateMutex.Lock()
	samples := gui.State.Samples.Samples()

	graphSpecs := gui.Config.UserConfig.Stats.Graphs
	graphs := make([]string, len(graphSpecs))
	for i, spec := range graphSpecs {
		graph, err := plotGraph(samples, spec, width-10)
		if err != nil {
			graph = err.Error()
		}
		graphs[i] = utils.ColoredString(graph, utils.GetColorAttribute(spec.Color))
	}
	gui.Mutexes.StateMutex.Unlock()

	_ = gui.renderString(gui.g, "data", "\n"+strings.Join(graphs, "\n\n"))
}

// plotGraph returns the plotted graph based on the graph spec and the
// sample history
func plotGraph(samples []RecordedSample, spec config.GraphConfig, width int) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("no data yet")
	}

	data := make([]float64, len(samples))
	for i, sample := range samples {
		value, err := lookup.LookupString(sample, spec.StatPath)
		if err != nil {
			return "", fmt.Errorf("could not find key: %s", spec.StatPath)
		}
		floatValue, err := getFloat(value.Interface())
		if err != nil {
			return "", err
		}

		data[i] = floatValue
	}

	max := spec.Max
	if spec.MaxType == "" {
		max = lo.Max(data)
	}

	min := spec.Min
	if spec.MinType == "" {
		min = lo.Min(data)
	}

	height := 10
	if spec.Height > 0 {
		height = spec.Height
	}

	caption := fmt.Sprintf(
		"%s: %0.2f (%v)",
		spec.Caption,
		data[len(data)-1],
		time.Since(samples[0].RecordedAt).Round(time.Second),
	)

	return asciigraph.Plot(
		data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Min(min),
		asciigraph.Max(max),
		asciigraph.Caption(caption),
	), nil
}

var floatType = reflect.TypeOf(float64(0))

func getFloat(unk interface{}) (float64, error) {
	v := reflect.ValueOf(unk)
	v = reflect.Indirect(v)
	if v.Type() == floatType {
		return v.Float(), nil
	}
	if !v.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("cannot convert %v to float64", v.Type())
	}
	fv := v.Convert(floatType)
	return fv.Float(), nil
}
