package types

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type DataSet interface{}

type Analyzer func(run int, name string, traces []*Trace) DataSet

type Comparator func(run int, names []string, datasets []DataSet)

// CoverageAnalyzer counts the cumulative number of unique states seen
// after each episode. A converging state abstraction shows up as a
// flattening curve.
func CoverageAnalyzer() Analyzer {
	return func(i int, s string, t []*Trace) DataSet {
		uniqueStates := make(map[string]bool)
		numUniqueStates := make([]int, 0)
		for _, trace := range t {
			for j := 0; j < trace.Len(); j++ {
				s, _, _, next, _, _ := trace.Get(j)
				uniqueStates[s.Hash()] = true
				uniqueStates[next.Hash()] = true
			}
			numUniqueStates = append(numUniqueStates, len(uniqueStates))
		}
		return numUniqueStates
	}
}

func CoveragePlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "State coverage"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Unique states"
		for i := 0; i < len(s); i++ {
			uniqueStates := ds[i].([]int)
			points := make(plotter.XYs, len(uniqueStates))
			for j, v := range uniqueStates {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			fmt.Printf("Number of unique states: %d for experiment: %s\n", uniqueStates[len(uniqueStates)-1], s[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_coverage.png"))
	}
}

// RewardAnalyzer collects the total reward of each episode.
func RewardAnalyzer() Analyzer {
	return func(i int, s string, t []*Trace) DataSet {
		rewards := make([]float64, len(t))
		for j, trace := range t {
			rewards[j] = trace.TotalReward()
		}
		return rewards
	}
}

func RewardPlotter(plotPath string) Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, s []string, ds []DataSet) {
		p := plot.New()
		p.Title.Text = "Episode reward"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Total reward"
		for i := 0; i < len(s); i++ {
			rewards := ds[i].([]float64)
			points := make(plotter.XYs, len(rewards))
			for j, v := range rewards {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(s[i], line)
			mean, std := stat.MeanStdDev(rewards, nil)
			fmt.Printf("Episode reward mean: %.3f, stddev: %.3f for experiment: %s\n", mean, std, s[i])
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_reward.png"))
	}
}
