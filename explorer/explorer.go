package explorer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dojoenv/dojo-rl/dojo"
	"github.com/dojoenv/dojo-rl/policies"
	"github.com/dojoenv/dojo-rl/types"
	"golang.org/x/exp/slices"
)

// Explorer is an offline inspector of a saved agent: its checkpoint
// and, optionally, recorded episode traces.
type Explorer struct {
	CheckpointFile string
	TracesFile     string

	Checkpoint *policies.Checkpoint
	QTable     *policies.QTable
	Traces     []*types.TraceRecord
}

// Create an explorer of a checkpoint and trace file
func NewExplorer(checkpointFile string, tracesFile string) (*Explorer, error) {
	e := &Explorer{
		CheckpointFile: checkpointFile,
		TracesFile:     tracesFile,
		Traces:         make([]*types.TraceRecord, 0),
	}

	checkpoint, err := policies.LoadCheckpoint(checkpointFile)
	if err != nil {
		return nil, err
	}
	e.Checkpoint = checkpoint
	e.QTable = checkpoint.Table()

	if tracesFile != "" {
		e.Traces, err = readTraces(tracesFile)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func readTraces(path string) ([]*types.TraceRecord, error) {
	traces := make([]*types.TraceRecord, 0)
	file, err := os.Open(path)
	if err != nil {
		return traces, fmt.Errorf("error reading file: %s", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	maxTraceSize := 5 * 1024 * 1024
	scanner.Buffer(make([]byte, maxTraceSize), maxTraceSize)
	for scanner.Scan() {
		t := &types.TraceRecord{}
		bs := scanner.Bytes()
		if len(bs) >= maxTraceSize {
			return traces, errors.New("error trace too big")
		}
		if err := json.Unmarshal(bs, t); err != nil {
			return traces, fmt.Errorf("error reading file contents: %s", err)
		}
		if len(t.States) != len(t.Actions) || len(t.Actions) != len(t.NextStates) {
			return traces, fmt.Errorf("number of states, actions and next states mismatched")
		}
		traces = append(traces, t)
	}
	if scanner.Err() != nil {
		return traces, fmt.Errorf("failed to read traces: %s", scanner.Err())
	}
	return traces, nil
}

// canonicalOrder sorts action hashes by their index in the fixed pad
// action set, so best reports the action the training-time tie-break
// selects. Hashes outside the set sort after it, alphabetically.
func canonicalOrder(hashes []string) []string {
	rank := make(map[string]int, len(dojo.AllActions))
	for i, a := range dojo.AllActions {
		rank[a.Hash()] = i
	}
	slices.SortFunc(hashes, func(a, b string) int {
		ra, oka := rank[a]
		rb, okb := rank[b]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a, b)
	})
	return hashes
}

// Repl runs the interactive prompt on stdin.
func (e *Explorer) Repl() {
	fmt.Printf("Loaded checkpoint with %d states (alpha=%v gamma=%v epsilon=%v), %d traces\n",
		e.QTable.Size(), e.Checkpoint.Alpha, e.Checkpoint.Gamma, e.Checkpoint.Epsilon, len(e.Traces))
	fmt.Println("Commands: states [n], q <state>, best <state>, trace <i>, quit")

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			fmt.Print("> ")
			continue
		}
		switch fields[0] {
		case "quit", "exit":
			return
		case "states":
			n := 20
			if len(fields) > 1 {
				if v, err := strconv.Atoi(fields[1]); err == nil {
					n = v
				}
			}
			for i, s := range e.QTable.States() {
				if i >= n {
					fmt.Printf("... %d more\n", e.QTable.Size()-n)
					break
				}
				fmt.Println(s)
			}
		case "q":
			if len(fields) < 2 {
				fmt.Println("usage: q <state>")
				break
			}
			state := fields[1]
			if !e.QTable.HasState(state) {
				fmt.Println("unknown state")
				break
			}
			for _, a := range e.QTable.Actions(state) {
				fmt.Printf("%-24s %.5f\n", a, e.QTable.Get(state, a, 0))
			}
		case "best":
			if len(fields) < 2 {
				fmt.Println("usage: best <state>")
				break
			}
			state := fields[1]
			if !e.QTable.HasState(state) {
				fmt.Println("unknown state")
				break
			}
			actions := canonicalOrder(e.QTable.Actions(state))
			best, val := e.QTable.BestAmong(state, actions, 0)
			fmt.Printf("%s (%.5f)\n", best, val)
		case "trace":
			if len(fields) < 2 {
				fmt.Println("usage: trace <i>")
				break
			}
			i, err := strconv.Atoi(fields[1])
			if err != nil || i < 0 || i >= len(e.Traces) {
				fmt.Println("no such trace")
				break
			}
			t := e.Traces[i]
			total := 0.0
			for j := range t.States {
				total += t.Rewards[j]
				fmt.Printf("%4d %-16s r=%+.3f terminal=%v\n", j, t.Actions[j], t.Rewards[j], t.Terminals[j])
			}
			fmt.Printf("total reward: %+.3f\n", total)
		default:
			fmt.Println("unknown command")
		}
		fmt.Print("> ")
	}
}
