package install

import "time"

// Outcome is the result of installing one application.
type Outcome struct {
	App      string        `json:"app"`
	Success  bool          `json:"success"`
	Message  string        `json:"message,omitempty"`
	Error    string        `json:"error,omitempty"`
	Method   string        `json:"method"`
	Duration time.Duration `json:"duration"`
}

// BatchResult aggregates the outcomes of one InstallAll call. Results are in
// input order.
type BatchResult struct {
	ID        string    `json:"id,omitempty"`
	Installed int       `json:"installed"`
	Failed    int       `json:"failed"`
	Total     int       `json:"total"`
	Results   []Outcome `json:"results"`
	Message   string    `json:"message"`
}

// Succeeded reports whether every item installed.
func (b BatchResult) Succeeded() bool {
	return b.Failed == 0
}

func successOutcome(app, method string) Outcome {
	return Outcome{
		App:     app,
		Success: true,
		Message: "Successfully installed " + app,
		Method:  method,
	}
}

func failedOutcome(app, method string, err error) Outcome {
	return Outcome{
		App:    app,
		Error:  err.Error(),
		Method: method,
	}
}
