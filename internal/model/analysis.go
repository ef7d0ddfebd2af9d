package model

// UploadedDocument is a file received from the form. It lives only for the
// duration of one request and is never written to storage.
type UploadedDocument struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Size returns the number of uploaded bytes.
func (d *UploadedDocument) Size() int {
	if d == nil {
		return 0
	}
	return len(d.Data)
}

// AnalysisRequest is the prompt sent to the completion endpoint.
type AnalysisRequest struct {
	Model             string
	SystemInstruction string
	UserText          string
	// DocumentURI is the uploaded file as a base64 data URI.
	DocumentURI string
}

// Result is the outcome of one analysis run. Exactly one of Text or Err is meaningful:
// a nil Err is a success carrying Text.
type Result struct {
	Text string
	Err  error
}

// Succeeded reports whether the run produced analysis text.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Failure returns the human-readable error description, or "" on success.
func (r Result) Failure() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
