package base

import "github.com/viant/bedrockchat/genai/llm"

// UsageListener is a callback used by provider clients to report token usage
// for each successful request. A struct implementing its own OnUsage method
// can be converted by passing the method value, e.g. `aggregator.OnUsage`.
type UsageListener func(model string, usage *llm.Usage)

// OnUsage makes the function compatible with method-based invocation.
func (f UsageListener) OnUsage(model string, usage *llm.Usage) {
	if f == nil {
		return
	}
	f(model, usage)
}
