package models

// GradingRequest is the body of both rating endpoints. CorrectAnswer carries
// ciphertext produced by the answer-authoring system — the plaintext correct
// answer never travels in the clear.
type GradingRequest struct {
	UserAnswer    string `json:"userAnswer" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
}

// GradingResult is the sole success payload of a rating endpoint.
type GradingResult struct {
	Rating int `json:"rating"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
