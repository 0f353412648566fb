package markup

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Metadata field keys.
const (
	FieldAuthor = "author"
	FieldTime   = "time"
	FieldLabel  = "label"
)

// FieldKeys lists the recognized metadata keys in serialization order.
var FieldKeys = [...]string{FieldAuthor, FieldTime, FieldLabel}

// Fields is the decoded content of a metadata block.
// Unknown keys are ignored on decode and dropped on encode.
type Fields struct {
	Author string
	Time   int64 // Unix seconds
	Label  string
}

// IsZero returns true if no field is set.
func (f Fields) IsZero() bool {
	return f.Author == "" && f.Time == 0 && f.Label == ""
}

// Value returns the textual value of a field, "" when unset.
func (f Fields) Value(key string) string {
	switch key {
	case FieldAuthor:
		return f.Author
	case FieldTime:
		if f.Time == 0 {
			return ""
		}
		return strconv.FormatInt(f.Time, 10)
	case FieldLabel:
		return f.Label
	}
	return ""
}

// Encode serializes the fields into a metadata block body (without the
// "@@" terminator). It returns "" for zero fields.
func (f Fields) Encode() string {
	if f.IsZero() {
		return ""
	}
	out := "{}"
	if f.Author != "" {
		out, _ = sjson.Set(out, FieldAuthor, f.Author)
	}
	if f.Time != 0 {
		out, _ = sjson.Set(out, FieldTime, f.Time)
	}
	if f.Label != "" {
		out, _ = sjson.Set(out, FieldLabel, f.Label)
	}
	return out
}

// Block returns the metadata block including its terminator, or "".
func (f Fields) Block() string {
	body := f.Encode()
	if body == "" {
		return ""
	}
	return body + MetadataTerminator
}

// ValidMetadata reports whether raw is a well-formed metadata body.
func ValidMetadata(raw string) bool {
	return gjson.Valid(raw) && gjson.Parse(raw).IsObject()
}

// DecodeFields decodes a metadata body. Malformed input yields zero Fields.
func DecodeFields(raw string) Fields {
	if raw == "" || !ValidMetadata(raw) {
		return Fields{}
	}
	res := gjson.GetMany(raw, FieldAuthor, FieldTime, FieldLabel)
	return Fields{
		Author: res[0].String(),
		Time:   res[1].Int(),
		Label:  res[2].String(),
	}
}
