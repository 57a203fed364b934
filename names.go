package main

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

type TokenGenerator interface {
	Next() string
}

// UUIDTokens yields a random v4 UUID as 32 hex characters.
type UUIDTokens struct{}

func (UUIDTokens) Next() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

func ExecutionName(prefix, token, requestID string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, token, requestID)
}
