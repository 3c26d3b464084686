package extract

import "strings"

// Tuning holds the progress heuristic constants. Zero values fall back to
// the defaults observed against real generations.
type Tuning struct {
	// BracesPerModule is the typical count of '{' (and '}') a fully
	// generated module contributes, nested topics and lessons included.
	BracesPerModule int
	// MinExpectedModules floors the estimated total so early buffers do not
	// report implausibly high percentages.
	MinExpectedModules int
}

const (
	defaultBracesPerModule    = 100
	defaultMinExpectedModules = 3

	// maxPercent caps the estimate; only an explicit complete signal may
	// claim 100%.
	maxPercent = 95
)

func (t Tuning) withDefaults() Tuning {
	if t.BracesPerModule <= 0 {
		t.BracesPerModule = defaultBracesPerModule
	}
	if t.MinExpectedModules <= 0 {
		t.MinExpectedModules = defaultMinExpectedModules
	}
	return t
}

// EstimateProgress guesses a completion percentage in [0, 95] from brace
// balance inside the modules region. Advisory UI feedback only; correctness
// decisions never depend on it.
func EstimateProgress(buf string, tn Tuning) int {
	tn = tn.withDefaults()

	loc := modulesMarker.FindStringIndex(buf)
	if loc == nil {
		return 0
	}
	region := buf[loc[1]:]

	open := strings.Count(region, "{")
	closed := strings.Count(region, "}")
	if open == 0 {
		return 0
	}

	total := (open + tn.BracesPerModule - 1) / tn.BracesPerModule
	if total < tn.MinExpectedModules {
		total = tn.MinExpectedModules
	}
	done := closed / tn.BracesPerModule

	pct := done * 100 / total
	if pct < 0 {
		pct = 0
	}
	if pct > maxPercent {
		pct = maxPercent
	}
	return pct
}
