package grading

import "fmt"

// InputError means the caller sent something we cannot grade: a missing or
// empty field, or a correct answer that does not decrypt. Message is safe to
// return to the client; Err holds internal detail for the server log only,
// so a bad ciphertext never becomes a decryption oracle.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ScorerError means the scoring pipeline itself failed: provider
// unreachable, timeout, or an LLM reply that failed parsing or range
// validation. It is never converted to a zero rating — a zero means "the
// answer is unrelated", not "the infrastructure broke."
type ScorerError struct {
	Op  string // "embedding" or "llm"
	Err error
}

func (e *ScorerError) Error() string {
	return fmt.Sprintf("%s scorer failed: %v", e.Op, e.Err)
}

func (e *ScorerError) Unwrap() error {
	return e.Err
}
