package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnparseablePayload means the backend body was not a JSON array of objects.
var ErrUnparseablePayload = errors.New("unparseable face detection payload")

// NormalizeBoxes converts an untyped detector payload into canonical boxes.
//
// Accepted element layouts, optionally wrapped in a "bounding_box" object:
// {x,y,width,height}, {x,y,w,h} and {x1,y1,x2,y2}. Missing or non-numeric
// fields become 0, so a malformed element yields a degenerate box rather than
// an error. Only a body that is not an array is rejected.
func NormalizeBoxes(raw []byte) ([]FaceBox, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparseablePayload, err)
	}

	boxes := make([]FaceBox, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		boxes = append(boxes, normalizeBox(obj))
	}

	return boxes, nil
}

func normalizeBox(obj map[string]any) FaceBox {
	if nested, ok := obj["bounding_box"].(map[string]any); ok {
		obj = nested
	}

	x1, y1 := number(obj, "x1"), number(obj, "y1")

	x := firstNonZero(number(obj, "x"), x1)
	y := firstNonZero(number(obj, "y"), y1)
	width := firstNonZero(number(obj, "width"), number(obj, "w"), span(obj, "x1", "x2"))
	height := firstNonZero(number(obj, "height"), number(obj, "h"), span(obj, "y1", "y2"))

	return FaceBox{X: x, Y: y, Width: width, Height: height}
}

// span returns obj[hi]-obj[lo] when both are present.
func span(obj map[string]any, lo, hi string) float64 {
	if _, ok := obj[lo]; !ok {
		return 0
	}
	if _, ok := obj[hi]; !ok {
		return 0
	}
	return number(obj, hi) - number(obj, lo)
}

func number(obj map[string]any, key string) float64 {
	switch v := obj[key].(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	default:
		return 0
	}
}

func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
