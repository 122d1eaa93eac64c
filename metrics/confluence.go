package metrics

import "github.com/rustyeddy/tradelog/journal"

type ChecklistItem struct {
	ID       string  `yaml:"id" json:"id"`
	Label    string  `yaml:"label,omitempty" json:"label,omitempty"`
	Weight   float64 `yaml:"weight" json:"weight"`
	Category string  `yaml:"category" json:"category"`
}

// ConfluenceScore returns the selected share of the total weight, 0..100.
// Unknown selections contribute nothing.
func ConfluenceScore(weights map[string]float64, selected []string) float64 {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		return 0
	}

	var got float64
	seen := make(map[string]bool, len(selected))
	for _, id := range selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		got += weights[id]
	}
	return got / total * 100
}

// Weights turns a checklist into the weight map ConfluenceScore uses.
func Weights(items []ChecklistItem) map[string]float64 {
	m := make(map[string]float64, len(items))
	for _, it := range items {
		m[it.ID] += it.Weight
	}
	return m
}

func ChecklistScore(items []ChecklistItem, selectedIDs []string) float64 {
	return ConfluenceScore(Weights(items), selectedIDs)
}

// CategoryScores scores each checklist category on its own.
func CategoryScores(items []ChecklistItem, selectedIDs []string) map[string]float64 {
	byCat := map[string][]ChecklistItem{}
	for _, it := range items {
		byCat[it.Category] = append(byCat[it.Category], it)
	}

	out := make(map[string]float64, len(byCat))
	for cat, group := range byCat {
		out[cat] = ChecklistScore(group, selectedIDs)
	}
	return out
}

// AssignGrade maps a confluence score onto the A+..D ladder. Lower bounds
// are inclusive.
func AssignGrade(score float64) journal.Grade {
	switch {
	case score >= 95:
		return journal.GradeAPlus
	case score >= 85:
		return journal.GradeA
	case score >= 70:
		return journal.GradeB
	case score >= 50:
		return journal.GradeC
	}
	return journal.GradeD
}
