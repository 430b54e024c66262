package httptool

// PayloadKind identifies which variant of a Result is populated.
type PayloadKind int

const (
	// PayloadJSON means the body parsed as JSON and JSON holds the value.
	PayloadJSON PayloadKind = iota
	// PayloadText means the body is text and Text holds it, decoded to UTF-8.
	PayloadText
	// PayloadBinary means the body is neither JSON nor text and Bytes holds it raw.
	PayloadBinary
)

// String returns a short name for the kind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadJSON:
		return "json"
	case PayloadText:
		return "text"
	default:
		return "binary"
	}
}

// Result is a normalized HTTP response. Exactly one of JSON, Text, or Bytes
// is populated, selected by Kind. Status and Headers describe the raw
// response for callers that want them.
type Result struct {
	Kind    PayloadKind
	JSON    any
	Text    string
	Bytes   []byte
	Status  int
	Headers map[string]string
}
