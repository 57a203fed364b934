package main

import (
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

type S3Record struct {
	S3 struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"s3"`
}

// S3Notification is the document carried in the body of each SQS message.
type S3Notification struct {
	Records []S3Record `json:"Records"`
}

type ManifestObject struct {
	Bucket string
	Key    string
}

func (o ManifestObject) String() string {
	return fmt.Sprintf("s3://%s/%s", o.Bucket, o.Key)
}

func parseEnvelope(msg events.SQSMessage) ([]ManifestObject, error) {
	var n S3Notification
	if err := json.Unmarshal([]byte(msg.Body), &n); err != nil {
		return nil, fmt.Errorf("%w: message %s: %v", ErrMalformedEnvelope, msg.MessageId, err)
	}
	if n.Records == nil {
		return nil, fmt.Errorf("%w: message %s: no Records in body", ErrMalformedEnvelope, msg.MessageId)
	}

	objects := make([]ManifestObject, 0, len(n.Records))
	for i, record := range n.Records {
		obj := ManifestObject{
			Bucket: record.S3.Bucket.Name,
			Key:    record.S3.Object.Key,
		}
		if obj.Bucket == "" {
			return nil, fmt.Errorf("%w: message %s record %d: missing bucket name", ErrMalformedNotification, msg.MessageId, i)
		}
		if obj.Key == "" {
			return nil, fmt.Errorf("%w: message %s record %d: missing object key", ErrMalformedNotification, msg.MessageId, i)
		}
		objects = append(objects, obj)
	}

	return objects, nil
}

// ExtractManifestObjects flattens a batch into manifest references in
// delivery order. Nothing is returned if any envelope is malformed.
func ExtractManifestObjects(event events.SQSEvent) ([]ManifestObject, error) {
	var objects []ManifestObject
	for _, msg := range event.Records {
		objs, err := parseEnvelope(msg)
		if err != nil {
			return nil, err
		}
		objects = append(objects, objs...)
	}

	return objects, nil
}
