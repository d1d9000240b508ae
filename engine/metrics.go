package engine

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dojoenv/dojo-rl/types"
)

// Metrics writes the per-episode training series as CSV, one row per
// completed episode.
type Metrics struct {
	file   *os.File
	writer *csv.Writer
}

func NewMetrics(path string) (*Metrics, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	writer := csv.NewWriter(file)
	header := []string{"episode", "ticks", "total_reward", "unique_states", "max_q"}
	if err := writer.Write(header); err != nil {
		file.Close()
		return nil, err
	}
	return &Metrics{file: file, writer: writer}, nil
}

func (m *Metrics) WriteEpisode(episode int, trace *types.Trace, uniqueStates int, maxQ float64) error {
	row := []string{
		strconv.Itoa(episode),
		strconv.Itoa(trace.Len()),
		strconv.FormatFloat(trace.TotalReward(), 'f', 4, 64),
		strconv.Itoa(uniqueStates),
		strconv.FormatFloat(maxQ, 'f', 4, 64),
	}
	if err := m.writer.Write(row); err != nil {
		return err
	}
	m.writer.Flush()
	return m.writer.Error()
}

func (m *Metrics) Close() error {
	m.writer.Flush()
	return m.file.Close()
}
