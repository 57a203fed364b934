package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sfn"
)

// ManifestRelay starts one workflow execution for one manifest object and
// returns the execution ARN.
type ManifestRelay interface {
	RelayManifest(ctx context.Context, obj ManifestObject, requestID string) (string, error)
}

type S3Api interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
	ListObjectsV2WithContext(ctx aws.Context, input *s3.ListObjectsV2Input, opts ...request.Option) (*s3.ListObjectsV2Output, error)
}

type SFNApi interface {
	StartExecutionWithContext(ctx aws.Context, input *sfn.StartExecutionInput, opts ...request.Option) (*sfn.StartExecutionOutput, error)
}

type StepFunctionsRelay struct {
	s3Client        S3Api
	sfnClient       SFNApi
	stateMachineArn string
	namePrefix      string
	tokens          TokenGenerator
	observer        Observer
}

func NewRelay(config Config, s3Client S3Api, sfnClient SFNApi) *StepFunctionsRelay {
	return &StepFunctionsRelay{
		s3Client:        s3Client,
		sfnClient:       sfnClient,
		stateMachineArn: config.StateMachineArn,
		namePrefix:      config.NamePrefix,
		tokens:          UUIDTokens{},
		observer:        LogObserver{Level: config.LogLevel},
	}
}

func (r *StepFunctionsRelay) RelayManifest(ctx context.Context, obj ManifestObject, requestID string) (string, error) {
	observer := r.observer
	if observer == nil {
		observer = nopObserver{}
	}
	tokens := r.tokens
	if tokens == nil {
		tokens = UUIDTokens{}
	}

	observer.ObjectReceived(obj.Bucket, obj.Key)

	manifest, err := r.fetch(ctx, obj)
	if err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrStorageFetch, obj, err)
	}
	observer.ManifestFetched(obj.Bucket, obj.Key, len(manifest))

	name := ExecutionName(r.namePrefix, tokens.Next(), requestID)
	// Input is the object body exactly as stored
	out, err := r.sfnClient.StartExecutionWithContext(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(r.stateMachineArn),
		Name:            aws.String(name),
		Input:           aws.String(string(manifest)),
	})
	if err != nil {
		return "", fmt.Errorf("%w %s for %s: %w", ErrOrchestrationSubmit, name, obj, err)
	}

	return aws.StringValue(out.ExecutionArn), nil
}

func (r *StepFunctionsRelay) fetch(ctx context.Context, obj ManifestObject) ([]byte, error) {
	out, err := r.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
