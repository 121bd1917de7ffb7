package audit

import (
	"encoding/json"
	"os"
)

// DefaultSnapshotPath is the conventional report snapshot location.
const DefaultSnapshotPath = ".dappaudit-report.json"

// SnapshotDiff describes how an audit run moved relative to a saved
// baseline run.
type SnapshotDiff struct {
	ScoreDelta int      `json:"score_delta"`
	New        []string `json:"new"`
	Resolved   []string `json:"resolved"`
	Unchanged  []string `json:"unchanged"`
}

// SaveSnapshot writes an analytics object to disk as JSON so a later
// run can be compared against it.
func SaveSnapshot(path string, a Analytics) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a previously saved analytics object.
func LoadSnapshot(path string) (Analytics, error) {
	var a Analytics
	data, err := os.ReadFile(path)
	if err != nil {
		return a, err
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return a, err
	}
	return a, nil
}

// CompareSnapshots diffs the current run against a baseline run by
// recommendation title: titles only in current are new risks, titles
// only in the baseline are resolved.
func CompareSnapshots(current, baseline Analytics) SnapshotDiff {
	diff := SnapshotDiff{ScoreDelta: current.Score - baseline.Score}
	base := map[string]bool{}
	for _, r := range baseline.Recommendations {
		base[r.Title] = true
	}
	cur := map[string]bool{}
	for _, r := range current.Recommendations {
		cur[r.Title] = true
		if base[r.Title] {
			diff.Unchanged = append(diff.Unchanged, r.Title)
		} else {
			diff.New = append(diff.New, r.Title)
		}
	}
	for _, r := range baseline.Recommendations {
		if !cur[r.Title] {
			diff.Resolved = append(diff.Resolved, r.Title)
		}
	}
	return diff
}
