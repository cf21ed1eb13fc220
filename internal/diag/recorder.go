// Package diag records per-frame streaming statistics to compressed
// JSONL files, one file per simulation run. The files are cheap enough
// to leave enabled and small enough to attach to a bug report.
package diag

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// FrameStats is one frame's streaming snapshot.
type FrameStats struct {
	Frame     int     `json:"frame"`
	CamX      float64 `json:"cam_x"`
	CamY      float64 `json:"cam_y"`
	Direction string  `json:"direction"`
	QueueLen  int     `json:"queue_len"`
	Visible   int     `json:"visible"`
	Loaded    int     `json:"loaded"`
	Modified  int     `json:"modified"`
}

// Recorder appends JSONL entries to a zstd-compressed per-run file.
type Recorder struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewRecorder opens the diagnostics file for a run under dir.
func NewRecorder(dir, runID string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("run-%s.jsonl.zst", runID))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Recorder{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

// Path returns the file the recorder writes to.
func (r *Recorder) Path() string { return r.path }

// Record appends one entry as a JSON line.
func (r *Recorder) Record(v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := r.w.Write(b); err != nil {
		return err
	}
	if err := r.w.WriteByte('\n'); err != nil {
		return err
	}
	return r.w.Flush()
}

// Close flushes and closes the compressed stream.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err1 error
	if r.w != nil {
		_ = r.w.Flush()
	}
	if r.enc != nil {
		err1 = r.enc.Close()
		r.enc = nil
	}
	if r.f != nil {
		_ = r.f.Close()
		r.f = nil
	}
	r.w = nil
	return err1
}

// ReadFrames decodes every FrameStats entry from a recorded file.
func ReadFrames(path string) ([]FrameStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []FrameStats
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var fs FrameStats
		if err := json.Unmarshal(sc.Bytes(), &fs); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, fs)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
