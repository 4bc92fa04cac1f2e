package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// WizardStateKey returns the cache key holding a wizard session's state
func (r *CacheKeyStruct) WizardStateKey(sessionID string) string {
	return fmt.Sprintf("wizard:%s:state", sessionID)
}

// WizardSubmitLockKey returns the cache key guarding an in-flight payment submission
func (r *CacheKeyStruct) WizardSubmitLockKey(sessionID string) string {
	return fmt.Sprintf("wizard:%s:submitting", sessionID)
}

var CacheKey = NewCacheKeyStruct()
