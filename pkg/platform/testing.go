package platform

import (
	"errors"
	"os"
	"sync"
	"syscall"
)

// MockPlatform delegates to the real filesystem (tests point it at t.TempDir())
// and lets tests inject failures and inspect calls.
type MockPlatform struct {
	*OSPlatform

	// Mock behavior flags
	ShouldFailCreate bool
	ShouldFailRemove bool
	ShouldFailSync   bool
	ShouldFailRename bool
	// FailWriteAfter makes writes fail once this many bytes have been written
	// to a created file. Negative disables it.
	FailWriteAfter int64

	mu          sync.Mutex
	CreateCalls []string
	RemoveCalls []string
	RenameCalls []string
}

// NewMockPlatform creates a new mock platform for testing
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{
		OSPlatform:     NewOSPlatform(),
		FailWriteAfter: -1,
		CreateCalls:    make([]string, 0),
		RemoveCalls:    make([]string, 0),
		RenameCalls:    make([]string, 0),
	}
}

func (mp *MockPlatform) Create(name string) (File, error) {
	mp.mu.Lock()
	mp.CreateCalls = append(mp.CreateCalls, name)
	mp.mu.Unlock()

	if mp.ShouldFailCreate {
		return nil, NewPlatformError("create", name, os.ErrPermission)
	}

	f, err := mp.OSPlatform.Create(name)
	if err != nil {
		return nil, err
	}
	return &mockFile{File: f, failAfter: mp.FailWriteAfter, failSync: mp.ShouldFailSync}, nil
}

func (mp *MockPlatform) Remove(name string) error {
	mp.mu.Lock()
	mp.RemoveCalls = append(mp.RemoveCalls, name)
	mp.mu.Unlock()

	if mp.ShouldFailRemove {
		return NewPlatformError("remove", name, syscall.EBUSY)
	}
	return mp.OSPlatform.Remove(name)
}

// Rename records the destination path.
func (mp *MockPlatform) Rename(oldpath, newpath string) error {
	mp.mu.Lock()
	mp.RenameCalls = append(mp.RenameCalls, newpath)
	mp.mu.Unlock()

	if mp.ShouldFailRename {
		return NewPlatformError("rename", newpath, syscall.EXDEV)
	}
	return mp.OSPlatform.Rename(oldpath, newpath)
}

// Reset clears all call tracking and failure flags
func (mp *MockPlatform) Reset() {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.CreateCalls = mp.CreateCalls[:0]
	mp.RemoveCalls = mp.RemoveCalls[:0]
	mp.RenameCalls = mp.RenameCalls[:0]
	mp.ShouldFailCreate = false
	mp.ShouldFailRemove = false
	mp.ShouldFailSync = false
	mp.ShouldFailRename = false
	mp.FailWriteAfter = -1
}

var errInjectedWrite = errors.New("injected write failure")

type mockFile struct {
	File
	written   int64
	failAfter int64
	failSync  bool
}

func (f *mockFile) Write(p []byte) (int, error) {
	if f.failAfter >= 0 && f.written+int64(len(p)) > f.failAfter {
		return 0, NewPlatformError("write", f.Name(), errInjectedWrite)
	}
	n, err := f.File.Write(p)
	f.written += int64(n)
	return n, err
}

func (f *mockFile) Sync() error {
	if f.failSync {
		return NewPlatformError("sync", f.Name(), syscall.EIO)
	}
	return f.File.Sync()
}
