package driven

// Prompt names used with PromptStore.
const (
	// PromptAnswerSystem is the system instruction for answer generation.
	PromptAnswerSystem = "answer_system"

	// PromptAnswerUser is the user prompt template when grounding context
	// was retrieved. Placeholders: question, context.
	PromptAnswerUser = "answer_user"

	// PromptAnswerUserNoContext is the user prompt template when retrieval
	// returned nothing. Placeholder: question.
	PromptAnswerUserNoContext = "answer_user_nocontext"
)

// PromptStore loads prompt templates by name.
// Implementations fall back to embedded defaults when a template is
// missing, so Load only fails for unknown names.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}
