package appstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/vango-dev/appstore/pkg/i18n"
)

var errBoom = errors.New("boom")

// recordingStorage is an in-memory kv.Store that records writes and can be
// told to fail.
type recordingStorage struct {
	mu     sync.Mutex
	data   map[string]string
	sets   []string
	getErr error
	setErr error
	closed bool
}

func newRecordingStorage(initial map[string]string) *recordingStorage {
	data := make(map[string]string, len(initial))
	for k, v := range initial {
		data[k] = v
	}
	return &recordingStorage{data: data}
}

func (r *recordingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return "", false, r.getErr
	}
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *recordingStorage) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setErr != nil {
		return r.setErr
	}
	r.data[key] = value
	r.sets = append(r.sets, key+"="+value)
	return nil
}

func (r *recordingStorage) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *recordingStorage) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingStorage) value(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok
}

// recordingActivator records every Activate call.
type recordingActivator struct {
	mu    sync.Mutex
	calls []i18n.Locale
	err   error
}

func (a *recordingActivator) Activate(l i18n.Locale) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, l)
	return a.err
}

func (a *recordingActivator) count(l i18n.Locale) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c == l {
			n++
		}
	}
	return n
}

func (a *recordingActivator) fail(err error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
