package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/sfn"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Handler struct {
	relay       ManifestRelay
	s3Client    S3Api
	concurrency int
}

// Response marshals to an empty JSON object.
type Response struct{}

func NewHandler() (*Handler, error) {
	sess := session.Must(session.NewSession())
	config, err := LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	s3Client := s3.New(sess)
	relay := NewRelay(config, s3Client, sfn.New(sess))
	return &Handler{relay: relay, s3Client: s3Client, concurrency: config.Concurrency}, nil
}

// relayObjects relays every object, stopping at the first failure. Objects
// not yet started when a failure happens are skipped.
func (h *Handler) relayObjects(ctx context.Context, objects []ManifestObject, requestID string) (*ExecutionTally, error) {
	tally := &ExecutionTally{}
	limit := h.concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, obj := range objects {
		if gctx.Err() != nil {
			break
		}
		obj := obj
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			arn, err := h.relay.RelayManifest(gctx, obj, requestID)
			if err != nil {
				return err
			}
			tally.Add(arn)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return tally, err
	}

	return tally, ctx.Err()
}

func (h *Handler) Process(ctx context.Context, event events.SQSEvent, requestID string) error {
	objects, err := ExtractManifestObjects(event)
	if err != nil {
		return err
	}
	tally, err := h.relayObjects(ctx, objects, requestID)
	log.Printf("started %d of %d executions", tally.Len(), len(objects))

	return err
}

func (h *Handler) HandleLambdaEvent(ctx context.Context, event events.SQSEvent) (Response, error) {
	if err := h.Process(ctx, event, requestIDFromContext(ctx)); err != nil {
		return Response{}, err
	}

	return Response{}, nil
}

// HandleS3URL relays every object under an s3://bucket/prefix URL and
// returns the ARNs of the executions it started.
func (h *Handler) HandleS3URL(ctx context.Context, url string) ([]string, error) {
	bucket, prefix, err := ParseS3URL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse S3 URL: %w", err)
	}

	var objects []ManifestObject
	var continuationToken *string
	for {
		resp, err := h.s3Client.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, item := range resp.Contents {
			key := aws.StringValue(item.Key)
			// skip folder placeholders
			if strings.HasSuffix(key, "/") {
				continue
			}
			objects = append(objects, ManifestObject{Bucket: bucket, Key: key})
		}

		if !aws.BoolValue(resp.IsTruncated) {
			break
		}
		continuationToken = resp.NextContinuationToken
	}

	tally, err := h.relayObjects(ctx, objects, requestIDFromContext(ctx))
	return tally.ARNs(), err
}

func requestIDFromContext(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}

	return uuid.NewString()
}
