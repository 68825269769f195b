package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBoxes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []FaceBox
	}{
		{
			name:    "x y width height",
			payload: `[{"x":10,"y":20,"width":100,"height":120}]`,
			want:    []FaceBox{{X: 10, Y: 20, Width: 100, Height: 120}},
		},
		{
			name:    "x y w h",
			payload: `[{"x":5,"y":6,"w":50,"h":60}]`,
			want:    []FaceBox{{X: 5, Y: 6, Width: 50, Height: 60}},
		},
		{
			name:    "corner coordinates",
			payload: `[{"x1":100,"y1":50,"x2":300,"y2":350}]`,
			want:    []FaceBox{{X: 100, Y: 50, Width: 200, Height: 300}},
		},
		{
			name:    "bounding_box wrapper",
			payload: `[{"bounding_box":{"x":1,"y":2,"w":3,"h":4},"confidence":0.9}]`,
			want:    []FaceBox{{X: 1, Y: 2, Width: 3, Height: 4}},
		},
		{
			name:    "multiple faces",
			payload: `[{"x":0,"y":0,"w":10,"h":10},{"x":40,"y":40,"w":20,"h":20}]`,
			want:    []FaceBox{{Width: 10, Height: 10}, {X: 40, Y: 40, Width: 20, Height: 20}},
		},
		{
			name:    "empty array",
			payload: `[]`,
			want:    []FaceBox{},
		},
		{
			name:    "unknown layout degrades to zero box",
			payload: `[{"left":10,"top":10,"right":20,"bottom":20}]`,
			want:    []FaceBox{{}},
		},
		{
			name:    "non numeric fields",
			payload: `[{"x":"ten","y":null,"width":true,"height":[1]}]`,
			want:    []FaceBox{{}},
		},
		{
			name:    "non object element",
			payload: `[42]`,
			want:    []FaceBox{{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeBoxes([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeBoxes_Unparseable(t *testing.T) {
	payloads := []string{``, `not json`, `{"error":"quota"}`, `"faces"`, `[{"x":1}`}

	for _, p := range payloads {
		_, err := NormalizeBoxes([]byte(p))
		require.Error(t, err, p)
		assert.ErrorIs(t, err, ErrUnparseablePayload)
	}
}

func TestFaceBox_Center(t *testing.T) {
	box := FaceBox{X: 100, Y: 50, Width: 200, Height: 300}

	assert.Equal(t, 200.0, box.CenterX())
	assert.Equal(t, 200.0, box.CenterY())
}
