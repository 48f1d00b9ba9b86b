package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spec-kit/hris-service/internal/domain"
)

// Patch is a partial record keyed by JSON field name. A nil value clears the field.
type Patch map[string]any

// PatchFrom converts a typed partial record into a Patch. Zero valued omitempty fields are left out.
func PatchFrom(v any) (Patch, error) {
	fields, err := toMap(v)
	if err != nil {
		return nil, err
	}
	return Patch(fields).withoutMeta(), nil
}

// withoutMeta drops store owned keys so identifier and tenant never change after creation.
func (p Patch) withoutMeta() Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range domain.MetaKeys {
		delete(out, k)
	}
	return out
}

// split separates values to write from keys to remove.
func (p Patch) split() (map[string]any, []string) {
	set := make(map[string]any, len(p))
	var clear []string
	for k, v := range p {
		if v == nil {
			clear = append(clear, k)
			continue
		}
		set[k] = v
	}
	return set, clear
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	out := map[string]any{}
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return out, nil
}

func fromMap[T domain.Document](def Definition[T], fields map[string]any) (T, error) {
	record := def.New()
	raw, err := json.Marshal(fields)
	if err != nil {
		return record, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	if err := json.Unmarshal(raw, record); err != nil {
		return record, fmt.Errorf("%w: %v", ErrInvalidField, err)
	}
	return record, nil
}

// encodeData serializes the non meta fields of a record for the data column.
func encodeData(record any) ([]byte, error) {
	fields, err := toMap(record)
	if err != nil {
		return nil, err
	}
	for _, k := range domain.MetaKeys {
		delete(fields, k)
	}
	return json.Marshal(fields)
}

func decodeData[T domain.Document](def Definition[T], data []byte, meta domain.Meta) (T, error) {
	record := def.New()
	if len(data) > 0 {
		if err := json.Unmarshal(data, record); err != nil {
			return record, fmt.Errorf("decode %s: %w", def.Collection, err)
		}
	}
	*record.Metadata() = meta
	return record, nil
}

func clone[T domain.Document](def Definition[T], record T) (T, error) {
	fields, err := toMap(record)
	if err != nil {
		return record, err
	}
	return fromMap(def, fields)
}

// Touches reports whether the patch sets or clears any of keys.
func (p Patch) Touches(keys ...string) bool {
	for _, k := range keys {
		if _, ok := p[k]; ok {
			return true
		}
	}
	return false
}

// checkPatch verifies that the patch values decode into the entity shape
// and that a patched status is one the entity allows.
func checkPatch[T domain.Document](def Definition[T], patch Patch) error {
	if err := def.checkStatus(patch); err != nil {
		return err
	}
	set, _ := patch.split()
	_, err := fromMap(def, set)
	return err
}

// checkRecord applies the field rules of checkPatch to a whole record.
func checkRecord[T domain.Document](def Definition[T], record T) error {
	fields, err := toMap(record)
	if err != nil {
		return err
	}
	return def.checkStatus(fields)
}

// applyPatch returns a copy of current with patch merged in.
func applyPatch[T domain.Document](newRecord func() T, current T, patch Patch) (T, error) {
	fields, err := toMap(current)
	if err != nil {
		return current, err
	}
	for k, v := range patch {
		if v == nil {
			delete(fields, k)
			continue
		}
		fields[k] = v
	}
	return fromMap(Definition[T]{New: newRecord}, fields)
}

// fieldText renders a JSON value the way Postgres' ->> operator does.
func fieldText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
