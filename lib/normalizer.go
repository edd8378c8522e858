package lib

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// NormalizedRecord is a record ready to be emitted: nested structures are JSON text.
type NormalizedRecord map[string]interface{}

// opaqueFields are carried as JSON text because their shape depends on the
// HubSpot portal and cannot be described by a fixed schema.
var opaqueFields = map[string]bool{
	"properties":            true,
	"associations":          true,
	"propertiesWithHistory": true,
}

// Normalize flattens raw for emission. When replicationKey is set its value is
// mirrored to the top level, looked up in the nested properties if the record
// does not carry it directly.
func Normalize(raw RawRecord, replicationKey string) NormalizedRecord {
	record := gjson.ParseBytes(raw)
	normalized := NormalizedRecord{}

	record.ForEach(func(key, value gjson.Result) bool {
		if opaqueFields[key.Str] {
			normalized[key.Str] = toJSONText(value)
		} else {
			normalized[key.Str] = value.Value()
		}
		return true
	})

	if replicationKey != "" {
		if value, ok := replicationKeyValue(record, replicationKey); ok {
			normalized[replicationKey] = value.Value()
		}
	}

	return normalized
}

func replicationKeyValue(record gjson.Result, replicationKey string) (gjson.Result, bool) {
	if value, ok := member(record, replicationKey); ok {
		return value, true
	}
	if properties, ok := member(record, "properties"); ok {
		return member(properties, replicationKey)
	}
	return gjson.Result{}, false
}

// member looks key up literally, without interpreting gjson path syntax.
func member(obj gjson.Result, key string) (gjson.Result, bool) {
	var (
		found gjson.Result
		ok    bool
	)
	if !obj.IsObject() {
		return found, false
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.Str == key {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// toJSONText renders value with ", " and ": " separators and ASCII-only
// strings, keeping object keys in their original order.
func toJSONText(value gjson.Result) string {
	var sb strings.Builder
	writeJSONText(&sb, value)
	return sb.String()
}

func writeJSONText(sb *strings.Builder, value gjson.Result) {
	switch {
	case value.IsObject():
		sb.WriteByte('{')
		first := true
		value.ForEach(func(k, v gjson.Result) bool {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			writeQuoted(sb, k.Str)
			sb.WriteString(": ")
			writeJSONText(sb, v)
			return true
		})
		sb.WriteByte('}')
	case value.IsArray():
		sb.WriteByte('[')
		for i, v := range value.Array() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeJSONText(sb, v)
		}
		sb.WriteByte(']')
	case value.Type == gjson.String:
		writeQuoted(sb, value.Str)
	case value.Type == gjson.True:
		sb.WriteString("true")
	case value.Type == gjson.False:
		sb.WriteString("false")
	case value.Type == gjson.Number:
		sb.WriteString(value.Raw)
	default:
		sb.WriteString("null")
	}
}

const hexDigits = "0123456789abcdef"

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				writeUnicodeEscape(sb, r1)
				writeUnicodeEscape(sb, r2)
			case r < 0x20 || r >= utf8.RuneSelf:
				writeUnicodeEscape(sb, r)
			default:
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
}

func writeUnicodeEscape(sb *strings.Builder, r rune) {
	sb.WriteString(`\u`)
	for shift := 12; shift >= 0; shift -= 4 {
		sb.WriteByte(hexDigits[(r>>shift)&0xf])
	}
}
