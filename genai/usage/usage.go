package usage

import (
	"sort"
	"sync"

	"github.com/viant/bedrockchat/genai/llm"
)

// Stat accumulates token numbers for a single model.
type Stat struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
	Exchanges    int `json:"exchanges"`
}

// Aggregator collects usage grouped by model name.
type Aggregator struct {
	mux      sync.RWMutex
	PerModel map[string]*Stat
}

// OnUsage satisfies provider/base.UsageListener allowing Aggregator to be
// passed directly to provider clients.
func (a *Aggregator) OnUsage(model string, u *llm.Usage) {
	if u == nil {
		return
	}
	a.Add(model, u.PromptTokens, u.CompletionTokens)
}

// Add records token counts for a single exchange with a specific model.
func (a *Aggregator) Add(model string, input, output int) {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.PerModel == nil {
		a.PerModel = map[string]*Stat{}
	}
	stat, ok := a.PerModel[model]
	if !ok {
		stat = &Stat{}
		a.PerModel[model] = stat
	}
	stat.InputTokens += input
	stat.OutputTokens += output
	stat.Exchanges++
}

// Totals returns accumulated input and output tokens across all tracked models.
func (a *Aggregator) Totals() (input, output int) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	for _, stat := range a.PerModel {
		input += stat.InputTokens
		output += stat.OutputTokens
	}
	return input, output
}

// Snapshot returns a copy of per-model stats.
func (a *Aggregator) Snapshot() map[string]Stat {
	a.mux.RLock()
	defer a.mux.RUnlock()
	result := make(map[string]Stat, len(a.PerModel))
	for k, v := range a.PerModel {
		result[k] = *v
	}
	return result
}

// Keys returns sorted list of model names.
func (a *Aggregator) Keys() []string {
	a.mux.RLock()
	defer a.mux.RUnlock()
	keys := make([]string, 0, len(a.PerModel))
	for k := range a.PerModel {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
