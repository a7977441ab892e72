// Copyright 2025 The benchlab Authors. SPDX-License-Identifier: Apache-2.0

package progress

import "io"

// trackedReader advances a Bar by the number of bytes read.
type trackedReader struct {
	r   io.Reader
	bar *Bar
}

func (t *trackedReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n > 0 {
		t.bar.Add(int64(n))
	}
	return n, err
}

// TrackReader wraps r so that bytes read drive the bar. The caller remains
// responsible for Start and Finish; the bar total should be the expected
// byte count (for example a Content-Length or file size).
func TrackReader(bar *Bar, r io.Reader) io.Reader {
	return &trackedReader{r: r, bar: bar}
}

// trackedWriter advances a Bar by the number of bytes written.
type trackedWriter struct {
	w   io.Writer
	bar *Bar
}

func (t *trackedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if n > 0 {
		t.bar.Add(int64(n))
	}
	return n, err
}

// TrackWriter wraps w so that bytes written drive the bar.
func TrackWriter(bar *Bar, w io.Writer) io.Writer {
	return &trackedWriter{w: w, bar: bar}
}
