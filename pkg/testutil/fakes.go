package testutil

import (
	"sort"
	"sync"

	"github.com/tmchartrand/synceverything/pkg/errors"
	"github.com/tmchartrand/synceverything/pkg/types"
)

// MemoryStateStore implements types.StateStore without persistence.
type MemoryStateStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStateStore creates an empty in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{values: make(map[string]string)}
}

func (s *MemoryStateStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStateStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStateStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// FakeHost implements types.ExtensionHost and records the order of every
// mutation call for asserting batch sequencing.
type FakeHost struct {
	mu        sync.Mutex
	installed map[string]bool

	// Calls holds "install:<id>" / "uninstall:<id>" in invocation order.
	Calls []string

	// FailInstall / FailUninstall make individual identifiers fail.
	FailInstall   map[string]bool
	FailUninstall map[string]bool

	// ListErr makes ListInstalled fail.
	ListErr error
}

// NewFakeHost creates a host with the given extensions installed.
func NewFakeHost(installed ...string) *FakeHost {
	h := &FakeHost{
		installed:     make(map[string]bool),
		FailInstall:   make(map[string]bool),
		FailUninstall: make(map[string]bool),
	}
	for _, id := range installed {
		h.installed[id] = true
	}
	return h
}

func (h *FakeHost) ListInstalled() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ListErr != nil {
		return nil, h.ListErr
	}
	var ids []string
	for id := range h.installed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (h *FakeHost) Install(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, "install:"+id)
	if h.FailInstall[id] {
		return errors.Newf(errors.ErrExtensionInstall, "install of %s failed", id)
	}
	h.installed[id] = true
	return nil
}

func (h *FakeHost) Uninstall(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Calls = append(h.Calls, "uninstall:"+id)
	if h.FailUninstall[id] {
		return errors.Newf(errors.ErrExtensionUninstall, "uninstall of %s failed", id)
	}
	delete(h.installed, id)
	return nil
}

// Installed returns the current installed set, sorted.
func (h *FakeHost) Installed() []string {
	ids, _ := h.ListInstalled()
	return ids
}

// FakeConfirmer implements types.Confirmer with a scripted answer.
type FakeConfirmer struct {
	Answer bool
	Err    error

	// Asked records every diff presented.
	Asked []types.ExtensionDiff
}

func (c *FakeConfirmer) ConfirmReconcile(diff types.ExtensionDiff) (bool, error) {
	c.Asked = append(c.Asked, diff)
	return c.Answer, c.Err
}

// RecordingProgress implements types.ProgressReporter and captures events.
type RecordingProgress struct {
	Total    int
	Advanced []types.ItemResult
	Finished bool
}

func (p *RecordingProgress) Start(total int) {
	p.Total = total
}

func (p *RecordingProgress) Advance(item types.ItemResult) {
	p.Advanced = append(p.Advanced, item)
}

func (p *RecordingProgress) Finish() {
	p.Finished = true
}
