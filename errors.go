package main

import (
	"errors"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
)

var (
	ErrMalformedEnvelope     = errors.New("malformed envelope")
	ErrMalformedNotification = errors.New("malformed notification")
	ErrStorageFetch          = errors.New("failed to fetch manifest")
	ErrOrchestrationSubmit   = errors.New("failed to start execution")
)

// IsNotFound reports whether err came from S3 for a missing bucket or key.
func IsNotFound(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	switch aerr.Code() {
	case s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket, "NotFound":
		return true
	}

	return false
}
