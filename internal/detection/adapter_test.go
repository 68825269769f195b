package detection

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/icaocheck/internal/audit"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/imagemeta"
	"github.com/saturnino-fabrica-de-software/icaocheck/internal/provider"
)

// MockFaceProvider is a mock implementation of provider.FaceProvider
type MockFaceProvider struct {
	mock.Mock
}

func (m *MockFaceProvider) Name() string {
	return "mock"
}

func (m *MockFaceProvider) DetectFaces(ctx context.Context, image []byte) ([]provider.FaceBox, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]provider.FaceBox), args.Error(1)
}

// slowProvider blocks until the context ends.
type slowProvider struct{}

func (slowProvider) Name() string { return "slow" }

func (slowProvider) DetectFaces(ctx context.Context, _ []byte) ([]provider.FaceBox, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type recordingAudit struct {
	events []audit.Event
}

func (r *recordingAudit) Log(_ context.Context, e audit.Event) error {
	r.events = append(r.events, e)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var portraitMeta = imagemeta.Metadata{Width: 413, Height: 531, ByteSize: 60000}

func TestAdapter_Detect(t *testing.T) {
	backendErr := errors.New("status 503")
	oneFace := []provider.FaceBox{{X: 100, Y: 100, Width: 200, Height: 300}}

	tests := []struct {
		name      string
		faces     []provider.FaceBox
		err       error
		meta      imagemeta.Metadata
		want      Provenance
		wantFaces int
	}{
		{
			name:      "detected single face",
			faces:     oneFace,
			meta:      portraitMeta,
			want:      ProvenanceDetected,
			wantFaces: 1,
		},
		{
			name:      "detected empty list stays detected",
			faces:     []provider.FaceBox{},
			meta:      portraitMeta,
			want:      ProvenanceDetected,
			wantFaces: 0,
		},
		{
			name: "backend error with portrait metadata",
			err:  backendErr,
			meta: portraitMeta,
			want: ProvenanceInconclusive,
		},
		{
			name: "backend error with landscape metadata",
			err:  backendErr,
			meta: imagemeta.Metadata{Width: 800, Height: 600, ByteSize: 90000},
			want: ProvenanceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &MockFaceProvider{}
			if tt.err != nil {
				p.On("DetectFaces", mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				p.On("DetectFaces", mock.Anything, mock.Anything).Return(tt.faces, nil)
			}

			recorder := &recordingAudit{}
			a := NewAdapter(p, testLogger(), WithAuditLogger(recorder))
			result := a.Detect(context.Background(), []byte("img"), tt.meta)

			assert.Equal(t, tt.want, result.Provenance())
			require.Len(t, recorder.events, 1)

			switch r := result.(type) {
			case Detected:
				assert.NotNil(t, r.Faces)
				assert.Len(t, r.Faces, tt.wantFaces)
				assert.Equal(t, audit.EventFaceDetected, recorder.events[0].EventType)
			case Inconclusive:
				assert.ErrorIs(t, r.Reason, backendErr)
				assert.Equal(t, audit.EventDetectionUnavailable, recorder.events[0].EventType)
			case Unavailable:
				assert.ErrorIs(t, r.Reason, backendErr)
				assert.Equal(t, audit.EventDetectionUnavailable, recorder.events[0].EventType)
			}

			p.AssertNumberOfCalls(t, "DetectFaces", 1)
		})
	}
}

func TestAdapter_Detect_NilFacesBecomeEmpty(t *testing.T) {
	p := &MockFaceProvider{}
	p.On("DetectFaces", mock.Anything, mock.Anything).Return([]provider.FaceBox(nil), nil)

	result := NewAdapter(p, testLogger()).Detect(context.Background(), nil, imagemeta.Metadata{})

	detected, ok := result.(Detected)
	require.True(t, ok)
	assert.NotNil(t, detected.Faces)
}

func TestAdapter_Detect_Timeout(t *testing.T) {
	a := NewAdapter(slowProvider{}, testLogger(), WithTimeout(20*time.Millisecond))

	start := time.Now()
	result := a.Detect(context.Background(), nil, portraitMeta)

	assert.Less(t, time.Since(start), 2*time.Second)
	inconclusive, ok := result.(Inconclusive)
	require.True(t, ok)
	assert.ErrorIs(t, inconclusive.Reason, context.DeadlineExceeded)
}

func TestAdapter_Detect_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewAdapter(slowProvider{}, testLogger()).Detect(ctx, nil, imagemeta.Metadata{})

	unavailable, ok := result.(Unavailable)
	require.True(t, ok)
	assert.ErrorIs(t, unavailable.Reason, context.Canceled)
}

func TestLooksLikePortrait(t *testing.T) {
	tests := []struct {
		name string
		meta imagemeta.Metadata
		want bool
	}{
		{"passport photo", imagemeta.Metadata{Width: 413, Height: 531, ByteSize: 45000}, true},
		{"square lower bound", imagemeta.Metadata{Width: 300, Height: 300, ByteSize: 20001}, true},
		{"tall upper bound", imagemeta.Metadata{Width: 200, Height: 500, ByteSize: 30000}, true},
		{"too tall", imagemeta.Metadata{Width: 200, Height: 501, ByteSize: 30000}, false},
		{"landscape", imagemeta.Metadata{Width: 640, Height: 480, ByteSize: 80000}, false},
		{"too narrow", imagemeta.Metadata{Width: 199, Height: 300, ByteSize: 30000}, false},
		{"too short", imagemeta.Metadata{Width: 250, Height: 299, ByteSize: 30000}, false},
		{"byte size at threshold", imagemeta.Metadata{Width: 400, Height: 500, ByteSize: 20000}, false},
		{"unknown dimensions", imagemeta.Metadata{ByteSize: 90000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikePortrait(tt.meta))
		})
	}
}
