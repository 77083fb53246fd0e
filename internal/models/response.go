package models

// HealthResponse represents health check response
type HealthResponse struct {
	Status            string   `json:"status"`
	Timestamp         string   `json:"timestamp"`
	Version           string   `json:"version"`
	DefaultAggregator string   `json:"default_aggregator"`
	Aggregators       []string `json:"aggregators"`
	Transforms        []string `json:"transforms"`
}

// ResampleStats counts what a resample run consumed and produced
type ResampleStats struct {
	Samples    int `json:"samples"`
	Slots      int `json:"slots"`
	Remainders int `json:"remainders"`
}

// ResampleResponse represents resample response
type ResampleResponse struct {
	Aggregator string        `json:"aggregator"`
	Count      int           `json:"count"`
	Points     []Point       `json:"points"`
	Stats      ResampleStats `json:"stats"`
	RequestID  string        `json:"request_id,omitempty"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// BatchResult is the outcome for one series of a batch; exactly one field is set
type BatchResult struct {
	Result *ResampleResponse `json:"result,omitempty"`
	Error  *ErrorDetail      `json:"error,omitempty"`
}

// BatchResampleResponse represents batch resample response, in request order
type BatchResampleResponse struct {
	Results   []BatchResult `json:"results"`
	Failed    int           `json:"failed"`
	RequestID string        `json:"request_id,omitempty"`
}
