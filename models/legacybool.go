package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// LegacyBool is a boolean that tolerates the legacy "Yes"/"No" string
// encoding still present in older documents. Values are normalized to a
// canonical bool at decode time so nothing downstream ever has to care
// which encoding a document used. It always marshals as a plain bool.
type LegacyBool bool

// UnmarshalJSON accepts true/false, "Yes"/"No" (any casing), "true"/"false",
// empty string and null.
func (b *LegacyBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*b = false
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = normalizeLegacyString(s)
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("isHighRisk must be a boolean or a Yes/No string: %w", err)
	}
	*b = LegacyBool(v)
	return nil
}

// MarshalJSON emits the canonical bool encoding.
func (b LegacyBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// UnmarshalBSONValue accepts bool, string and null bson values.
func (b *LegacyBool) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bson.TypeBoolean:
		*b = LegacyBool(rv.Boolean())
	case bson.TypeString:
		*b = normalizeLegacyString(rv.StringValue())
	case bson.TypeNull, bson.TypeUndefined:
		*b = false
	default:
		return fmt.Errorf("cannot decode bson %v into LegacyBool", t)
	}
	return nil
}

// MarshalBSONValue emits the canonical bool encoding.
func (b LegacyBool) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(bool(b))
}

func normalizeLegacyString(s string) LegacyBool {
	switch s {
	case "Yes", "yes", "YES", "true", "True":
		return true
	}
	return false
}
