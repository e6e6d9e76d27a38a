package model

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StubMessage is returned by the endpoint when no analyzer backend is deployed.
const StubMessage = "Video analysis endpoint ready. Backend deployment required for full functionality."

// ProbeMessage is returned by GET /analyze.
const ProbeMessage = "Video analysis API endpoint"

// AnalysisResponse is the JSON payload returned by the analysis endpoint
type AnalysisResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	Error          string `json:"error,omitempty"`
	FileSize       *int64 `json:"fileSize,omitempty"`
	FileName       string `json:"fileName,omitempty"`
	GeminiResponse string `json:"gemini_response,omitempty"`
}

// NewErrorResponse builds an error payload carrying msg
func NewErrorResponse(msg string) *AnalysisResponse {
	return &AnalysisResponse{Status: StatusError, Error: msg}
}

// NewStubResponse builds the placeholder success payload for an upload
func NewStubResponse(fileName string, size int64) *AnalysisResponse {
	return &AnalysisResponse{
		Status:   StatusSuccess,
		Message:  StubMessage,
		FileSize: &size,
		FileName: fileName,
	}
}
