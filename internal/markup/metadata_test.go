package markup

import "testing"

func TestFieldsEncode(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   string
	}{
		{"zero", Fields{}, ""},
		{"author", Fields{Author: "ana"}, `{"author":"ana"}`},
		{"all", Fields{Author: "ana", Time: 1700000000, Label: "typo"}, `{"author":"ana","time":1700000000,"label":"typo"}`},
		{"quotes escaped", Fields{Label: `say "hi"`}, `{"label":"say \"hi\""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fields.Encode(); got != tt.want {
				t.Errorf("Encode = %q, want %q", got, tt.want)
			}
			if got := DecodeFields(tt.fields.Encode()); got != tt.fields {
				t.Errorf("DecodeFields(Encode) = %+v, want %+v", got, tt.fields)
			}
		})
	}
}

func TestDecodeFields(t *testing.T) {
	tests := []struct {
		raw  string
		want Fields
	}{
		{`{"author":"bo","extra":true}`, Fields{Author: "bo"}},
		{`{"time":"12"}`, Fields{Time: 12}},
		{`{"author":`, Fields{}},
		{`["author"]`, Fields{}},
		{``, Fields{}},
	}
	for _, tt := range tests {
		if got := DecodeFields(tt.raw); got != tt.want {
			t.Errorf("DecodeFields(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestFieldsValue(t *testing.T) {
	f := Fields{Author: "ana", Time: 42}
	if f.Value(FieldAuthor) != "ana" || f.Value(FieldTime) != "42" || f.Value(FieldLabel) != "" {
		t.Errorf("values = %q %q %q", f.Value(FieldAuthor), f.Value(FieldTime), f.Value(FieldLabel))
	}
	if (Fields{}).Value(FieldTime) != "" {
		t.Error("zero time should have no value")
	}
	if f.Block() != `{"author":"ana","time":42}@@` {
		t.Errorf("Block = %q", f.Block())
	}
	if (Fields{}).Block() != "" {
		t.Error("zero fields have no block")
	}
}
