package service

import (
	"sync"

	"purair2mqtt/pkg/airctl"
)

// StatusStore holds the latest device status snapshot. The monitor
// actor replaces the snapshot after each poll; entities re-read it on
// every access and never mutate it.
type StatusStore struct {
	mu     sync.RWMutex
	status airctl.DeviceStatus
}

func NewStatusStore() *StatusStore {
	return &StatusStore{}
}

func (s *StatusStore) Update(status airctl.DeviceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *StatusStore) Status() airctl.DeviceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
