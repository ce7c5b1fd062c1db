package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// RawRecord is one restaurant object as found in a data dump.
type RawRecord map[string]any

// EnvelopeShape identifies how restaurants are wrapped at the top level of a dump.
type EnvelopeShape int

const (
	// ShapeUnrecognized means the document carries no restaurants array.
	ShapeUnrecognized EnvelopeShape = iota
	// ShapeEnvelopeArray is a top-level array of envelopes.
	ShapeEnvelopeArray
	// ShapeSingleEnvelope is a single envelope object.
	ShapeSingleEnvelope
)

func (s EnvelopeShape) String() string {
	switch s {
	case ShapeEnvelopeArray:
		return "envelope_array"
	case ShapeSingleEnvelope:
		return "single_envelope"
	default:
		return "unrecognized"
	}
}

// Extraction is the result of unwrapping a decoded dump.
type Extraction struct {
	Shape   EnvelopeShape
	Records []RawRecord
	// Skipped counts envelope entries without a restaurant object.
	Skipped int
}

// Diagnostic describes an extraction that yielded nothing usable. Empty when records were found.
func (e Extraction) Diagnostic() string {
	switch {
	case e.Shape == ShapeUnrecognized:
		return "restaurants 配列が見つかりません"
	case len(e.Records) == 0 && e.Skipped > 0:
		return fmt.Sprintf("restaurant オブジェクトを持たないエントリのみでした (%d 件)", e.Skipped)
	case len(e.Records) == 0:
		return "restaurants 配列が空です"
	default:
		return ""
	}
}

// DecodeDocument parses a whole JSON document. Numbers are kept as json.Number.
func DecodeDocument(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return value, nil
}

// ClassifyEnvelope decides which envelope shape a decoded document has.
func ClassifyEnvelope(value any) EnvelopeShape {
	switch v := value.(type) {
	case []any:
		return ShapeEnvelopeArray
	case map[string]any:
		if _, ok := v["restaurants"].([]any); ok {
			return ShapeSingleEnvelope
		}
	}
	return ShapeUnrecognized
}

// ExtractRecords flattens the restaurants of a decoded document.
func ExtractRecords(value any) Extraction {
	ext := Extraction{Shape: ClassifyEnvelope(value)}

	switch ext.Shape {
	case ShapeEnvelopeArray:
		for _, item := range value.([]any) {
			envelope, ok := item.(map[string]any)
			if !ok {
				continue
			}
			entries, ok := envelope["restaurants"].([]any)
			if !ok {
				continue
			}
			ext.unwrap(entries)
		}
	case ShapeSingleEnvelope:
		ext.unwrap(value.(map[string]any)["restaurants"].([]any))
	}

	return ext
}

func (e *Extraction) unwrap(entries []any) {
	for _, entry := range entries {
		wrapper, ok := entry.(map[string]any)
		if !ok {
			e.Skipped++
			continue
		}
		restaurant, ok := wrapper["restaurant"].(map[string]any)
		if !ok {
			e.Skipped++
			continue
		}
		e.Records = append(e.Records, RawRecord(restaurant))
	}
}
