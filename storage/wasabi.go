package storage

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// WasabiStorage - storage adapter for blobs kept on wasabi
type WasabiStorage struct {
	Session *session.Session
	S3      *s3.S3
	Bucket  string
}

// NewWasabiStorage creates a new wasabi storage adapter
func NewWasabiStorage(bucket string, region string, accessKeyID string, secretAccessKey string) (*WasabiStorage, error) {
	sess, err := session.NewSession(&aws.Config{
		Endpoint:    aws.String(fmt.Sprintf("https://s3.%s.wasabisys.com", region)),
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""),
	})
	if err != nil {
		return nil, err
	}
	return &WasabiStorage{
		Session: sess,
		S3:      s3.New(sess),
		Bucket:  bucket,
	}, nil
}

// DeleteFile removes an object from the bucket. A missing object is
// treated as already deleted.
func (s *WasabiStorage) DeleteFile(path string) error {
	_, err := s.S3.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			logrus.Debugf("blob %s already gone", path)
			return nil
		}
		return errors.Wrapf(err, "unable to delete blob %s", path)
	}
	return nil
}
