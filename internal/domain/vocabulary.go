package domain

import "encoding/json"

// WordItem is one extracted word and its translation.
type WordItem struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// WordList is the structured answer for one chunk. Words is nil when the
// model answer had no "words" field.
type WordList struct {
	Words []WordItem `json:"words"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// AnalysisResult is the body of every /analyze_pdf response that reached the
// pipeline. Failures are reported here with HTTP 200; callers branch on Status.
type AnalysisResult struct {
	Status string
	Result []WordItem
	Detail string
}

// NewSuccessResult wraps an extracted word list.
func NewSuccessResult(words []WordItem) AnalysisResult {
	if words == nil {
		words = []WordItem{}
	}
	return AnalysisResult{Status: StatusSuccess, Result: words}
}

// NewFailureResult reports err as the failure detail.
func NewFailureResult(err error) AnalysisResult {
	detail := "unknown error"
	if err != nil && err.Error() != "" {
		detail = err.Error()
	}
	return AnalysisResult{Status: StatusError, Detail: detail}
}

// MarshalJSON emits {"status","result"} on success and {"status","detail"} otherwise.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.Status == StatusSuccess {
		result := r.Result
		if result == nil {
			result = []WordItem{}
		}
		return json.Marshal(struct {
			Status string     `json:"status"`
			Result []WordItem `json:"result"`
		}{r.Status, result})
	}
	return json.Marshal(struct {
		Status string `json:"status"`
		Detail string `json:"detail"`
	}{r.Status, r.Detail})
}
