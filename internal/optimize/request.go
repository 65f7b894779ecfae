package optimize

import "github.com/promptsmith/promptsmith/internal/llm"

// Generation parameters are fixed: a bounded token budget and low
// randomness so repeated runs over the same prompt converge.
const (
	temperature = 0.3
	maxTokens   = 600
)

const systemPrompt = `You are PromptSmith, an elite AI tasked with rewriting prompts to maximize clarity, explicit objectives, persona, constraints, tools, and expected outputs.
- Produce numbered sections with concise instructions.
- Clarify role, audience, inputs, outputs, evaluation metrics, and guardrails.
- Remove ambiguity, specify success criteria, and add validation/test cases when relevant.
- Keep within 600 tokens, avoid markdown tables, ensure copy-paste ready.
Respond as JSON with keys "optimized" and "rationale".`

// BuildRequest assembles the provider payload for one optimization call.
// Pure and deterministic: no network access happens here. The style hint,
// when present, is appended to the instruction set verbatim.
func BuildRequest(promptText, style, model string) llm.ChatRequest {
	system := systemPrompt
	if style != "" {
		system += "\nPreferred style: " + style
	}
	return llm.ChatRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: promptText},
		},
	}
}
