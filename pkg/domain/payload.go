package domain

import "io"

// PayloadKind selects how a Payload is encoded on the wire.
type PayloadKind int

const (
	// PayloadNone sends an empty body.
	PayloadNone PayloadKind = iota
	// PayloadRaw sends Raw as an unencoded body.
	PayloadRaw
	// PayloadForm sends Fields (and Files, if any) as multipart form content.
	PayloadForm
	// PayloadJSON sends Document encoded as JSON with an explicit content type.
	PayloadJSON
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadRaw:
		return "raw"
	case PayloadForm:
		return "form"
	case PayloadJSON:
		return "json"
	default:
		return "none"
	}
}

// FormField is a single named text value of a multipart payload.
type FormField struct {
	Name  string
	Value string
}

// FilePart is a binary blob of a multipart payload.
type FilePart struct {
	Field    string
	Filename string
	Content  io.Reader
}

// Payload is the body of a Request. Only the fields matching Kind are used.
type Payload struct {
	Kind     PayloadKind
	Raw      string
	Fields   []FormField
	Files    []FilePart
	Document any
}

// NoPayload is the empty body.
func NoPayload() Payload { return Payload{Kind: PayloadNone} }

// RawPayload wraps a plain string body.
func RawPayload(s string) Payload { return Payload{Kind: PayloadRaw, Raw: s} }

// JSONPayload wraps a value to be JSON encoded.
func JSONPayload(v any) Payload { return Payload{Kind: PayloadJSON, Document: v} }

// FormPayload builds a multipart payload from ordered fields and optional files.
func FormPayload(fields []FormField, files ...FilePart) Payload {
	return Payload{Kind: PayloadForm, Fields: fields, Files: files}
}
