// Copyright 2019 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

package glyphpipeline

import (
	"errors"
	"fmt"
	"log"
	"mime"
	"os"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// maxDeleteKeys is the most keys S3 will delete in one request
const maxDeleteKeys = 1000

// AwsConn contains the necessary things to publish glyphs to S3. It
// is designed to be generic enough to swap in other backends easily.
type AwsConn struct {
	// these should be set before running Init(), or left to defaults
	Region string
	Logger *log.Logger

	sess     *session.Session
	s3svc    *s3.S3
	uploader *s3manager.Uploader
}

// MinimalInit does the bare minimum to initialise aws services
func (a *AwsConn) MinimalInit() error {
	if a.Region == "" {
		a.Region = defaultAwsRegion
	}
	if a.Logger == nil {
		a.Logger = log.New(os.Stdout, "", 0)
	}

	var err error
	a.sess, err = session.NewSession(&aws.Config{
		Region: aws.String(a.Region),
	})
	if err != nil {
		return errors.New(fmt.Sprintf("Failed to set up aws session: %s", err))
	}
	a.s3svc = s3.New(a.sess)
	a.uploader = s3manager.NewUploader(a.sess)

	return nil
}

// Init just does the same as MinimalInit
func (a *AwsConn) Init() error {
	return a.MinimalInit()
}

// ListObjects lists the keys in bucket starting with prefix
func (a *AwsConn) ListObjects(bucket string, prefix string) ([]string, error) {
	var names []string
	err := a.s3svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, last bool) bool {
		for _, r := range page.Contents {
			names = append(names, *r.Key)
		}
		return true
	})
	return names, err
}

// DeleteObjects deletes a list of objects, in as many requests
// as are needed
func (a *AwsConn) DeleteObjects(bucket string, keys []string) error {
	for len(keys) > 0 {
		n := len(keys)
		if n > maxDeleteKeys {
			n = maxDeleteKeys
		}
		objs := []*s3.ObjectIdentifier{}
		for _, v := range keys[:n] {
			o := s3.ObjectIdentifier{Key: aws.String(v)}
			objs = append(objs, &o)
		}
		_, err := a.s3svc.DeleteObjects(&s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3.Delete{
				Objects: objs,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return err
		}
		keys = keys[n:]
	}
	return nil
}

// CreateBucket creates a new S3 bucket
func (a *AwsConn) CreateBucket(name string) error {
	_, err := a.s3svc.CreateBucket(&s3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	if err != nil {
		aerr, ok := err.(awserr.Error)
		if ok && (aerr.Code() == s3.ErrCodeBucketAlreadyExists || aerr.Code() == s3.ErrCodeBucketAlreadyOwnedByYou) {
			a.Logger.Println("Bucket already exists:", name)
		} else {
			return errors.New(fmt.Sprintf("Error creating bucket %s: %v", name, err))
		}
	}
	return nil
}

// Upload uploads the file at path to bucket/key, with a content type
// based on its extension so that it can be served directly.
func (a *AwsConn) Upload(bucket string, key string, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = a.uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType(key)),
	})
	return err
}

// contentType guesses the MIME type of an object from its key
func contentType(key string) string {
	t := mime.TypeByExtension(path.Ext(key))
	if t == "" {
		return "application/octet-stream"
	}
	return t
}

// Log records an item in the with the Logger. Arguments are handled
// as with fmt.Println.
func (a *AwsConn) Log(v ...interface{}) {
	a.Logger.Println(v...)
}
