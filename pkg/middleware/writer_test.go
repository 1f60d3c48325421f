package middleware

import (
	"bufio"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type flushRecorder struct {
	http.ResponseWriter
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

type hijackRecorder struct {
	http.ResponseWriter
	hijacked bool
}

func (h *hijackRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

// bareWriter implements neither Flusher nor Hijacker.
type bareWriter struct{ header http.Header }

func (b *bareWriter) Header() http.Header {
	if b.header == nil {
		b.header = make(http.Header)
	}
	return b.header
}
func (b *bareWriter) Write(p []byte) (int, error) { return len(p), nil }
func (b *bareWriter) WriteHeader(int)             {}

func TestStatusWriter_RecordsFirstStatusAndBytes(t *testing.T) {
	sw := wrapWriter(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, sw.Status(), "nothing written yet")

	sw.WriteHeader(http.StatusCreated)
	sw.WriteHeader(http.StatusInternalServerError)
	_, _ = sw.Write([]byte("hello"))

	assert.Equal(t, http.StatusCreated, sw.Status())
	assert.Equal(t, 5, sw.bytes)
}

func TestStatusWriter_WriteImpliesOK(t *testing.T) {
	sw := wrapWriter(httptest.NewRecorder())
	_, _ = sw.Write([]byte("x"))
	sw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, sw.Status())
}

func TestWrapWriter_Reuses(t *testing.T) {
	sw := wrapWriter(httptest.NewRecorder())
	assert.Same(t, sw, wrapWriter(sw))
}

func TestStatusWriter_Flush(t *testing.T) {
	rec := &flushRecorder{ResponseWriter: httptest.NewRecorder()}
	wrapWriter(rec).Flush()
	assert.True(t, rec.flushed)

	assert.NotPanics(t, func() { wrapWriter(&bareWriter{}).Flush() })
}

func TestStatusWriter_Hijack(t *testing.T) {
	rec := &hijackRecorder{ResponseWriter: httptest.NewRecorder()}
	_, _, err := wrapWriter(rec).Hijack()
	assert.NoError(t, err)
	assert.True(t, rec.hijacked)

	_, _, err = wrapWriter(&bareWriter{}).Hijack()
	assert.ErrorIs(t, err, http.ErrNotSupported)
}

func TestStatusWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Same(t, http.ResponseWriter(rec), wrapWriter(rec).Unwrap())
}
