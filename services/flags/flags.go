// Package flags implements deterministic percentage rollouts. A flag is
// on for a subject when the subject's stable bucket falls under the
// configured rollout percentage, so the same wallet always sees the
// same variant across sessions and instances.
package flags

import (
	"hash/fnv"

	"receivault/config"
)

// FlagService evaluates feature flags for a subject (usually a wallet).
type FlagService interface {
	Enabled(flag, subject string) bool
	Evaluate(subject string) map[string]bool
}

// DefaultFlagService reads rollout percentages from config.
type DefaultFlagService struct {
	Rollouts map[string]int
}

// NewFlagService builds a flag service from the loaded configuration.
func NewFlagService() *DefaultFlagService {
	return &DefaultFlagService{Rollouts: config.AppConfig.FlagRollouts}
}

// Bucket maps a flag/subject pair to a stable bucket in [0,100).
func Bucket(flag, subject string) int {
	h := fnv.New32a()
	h.Write([]byte(flag))
	h.Write([]byte(":"))
	h.Write([]byte(subject))
	return int(h.Sum32() % 100)
}

// Enabled reports whether the flag is on for the subject. Unknown flags
// are off; a rollout of 100 is on for everyone.
func (s *DefaultFlagService) Enabled(flag, subject string) bool {
	pct, ok := s.Rollouts[flag]
	if !ok || pct <= 0 {
		return false
	}
	if pct >= 100 {
		return true
	}
	return Bucket(flag, subject) < pct
}

// Evaluate resolves every configured flag for the subject.
func (s *DefaultFlagService) Evaluate(subject string) map[string]bool {
	out := make(map[string]bool, len(s.Rollouts))
	for flag := range s.Rollouts {
		out[flag] = s.Enabled(flag, subject)
	}
	return out
}
