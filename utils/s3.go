package utils

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var s3Client *s3.Client

func InitS3() {
	if os.Getenv("S3_BUCKET") == "" {
		log.Println("S3_BUCKET not set; meal photos will be kept as local paths")
		return
	}

	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
}

// S3Enabled reports whether photo uploads go to S3 or stay local.
func S3Enabled() bool {
	return s3Client != nil
}

// UploadImageToS3 stores raw image bytes under food-logs/ and returns the
// public URL (via CloudFront when configured).
func UploadImageToS3(imageData []byte, contentType, filenamePrefix string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("S3 is not configured")
	}

	// Determine extension from the content type
	exts, _ := mime.ExtensionsByType(contentType)
	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if len(exts) > 0 {
			ext = exts[0]
		} else {
			// fallback: use subtype
			parts := strings.SplitN(contentType, "/", 2)
			if len(parts) == 2 {
				ext = "." + parts[1]
			}
		}
	}

	// Build a unique S3 key
	key := fmt.Sprintf("food-logs/%s-%d%s",
		filenamePrefix,
		time.Now().UnixNano(),
		ext,
	)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	cfURL := os.Getenv("CLOUDFRONT_URL")
	if cfURL == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", os.Getenv("S3_BUCKET"), key), nil
	}
	return fmt.Sprintf("%s/%s", cfURL, key), nil
}
