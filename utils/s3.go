package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var s3Client *s3.Client

func InitS3() {
	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}
	s3Client = s3.NewFromConfig(cfg)
}

// UploadImageToS3 stores raw image bytes under the given folder and
// returns the public URL. Used for analyzed meal photos and profile
// pictures so the client can render history thumbnails.
func UploadImageToS3(imageData []byte, contentType, folder, prefix string) (string, error) {
	ext := ".jpg"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "jpeg" {
		ext = "." + parts[1]
	}

	key := fmt.Sprintf("%s/%s-%d%s", folder, prefix, time.Now().UnixNano(), ext)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", os.Getenv("CLOUDFRONT_URL"), key), nil
}

// UploadBase64ImageToS3 accepts a "data:<mime>;base64,<data>" URI.
func UploadBase64ImageToS3(base64Data, folder, prefix string) (string, error) {
	contentType, data, err := DecodeDataURI(base64Data)
	if err != nil {
		return "", err
	}
	return UploadImageToS3(data, contentType, folder, prefix)
}

// DecodeDataURI splits a data URI into its content type and raw bytes.
func DecodeDataURI(uri string) (string, []byte, error) {
	parts := strings.SplitN(uri, ",", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return "", nil, fmt.Errorf("invalid base64 image")
	}
	mediaType := strings.TrimPrefix(parts[0], "data:")
	contentType := strings.SplitN(mediaType, ";", 2)[0]

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return contentType, data, nil
}
