package main

import (
	"fmt"
	"log"
	"strings"
)

// Observer is notified for every manifest the relay handles.
type Observer interface {
	ObjectReceived(bucket, key string)
	ManifestFetched(bucket, key string, size int)
}

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelError
)

func ParseLogLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "error":
		return LevelError, nil
	}

	return LevelInfo, fmt.Errorf("invalid log level '%s'", s)
}

type LogObserver struct {
	Level LogLevel
}

func (o LogObserver) ObjectReceived(bucket, key string) {
	if o.Level <= LevelInfo {
		log.Printf("bucket=%s key=%s", bucket, key)
	}
}

func (o LogObserver) ManifestFetched(bucket, key string, size int) {
	if o.Level <= LevelDebug {
		log.Printf("fetched manifest s3://%s/%s (%d bytes)", bucket, key, size)
	}
}

type nopObserver struct{}

func (nopObserver) ObjectReceived(string, string)       {}
func (nopObserver) ManifestFetched(string, string, int) {}
