package suggestion

// MessageTypeFetchSuggestions is the extension channel request type.
const MessageTypeFetchSuggestions = "fetchSuggestions"

// Request is sent over the extension messaging channel. ID is optional;
// requests carrying one are answered with an envelope echoing it, the others
// with the bare result.
type Request struct {
	ID    string `json:"id,omitempty"`
	Type  string `json:"type"`
	Query string `json:"query"`
}
