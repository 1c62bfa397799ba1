package utils

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/wavelinkisp/opsboard/models"
)

// R2Client wraps the S3 client + bucket name for Cloudflare R2.
type R2Client struct {
	S3     *s3.Client
	Bucket string
}

func NewCloudClient(ctx context.Context) (*R2Client, error) {
	bucket := os.Getenv("R2_BUCKET")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("R2_ENDPOINT") // https://<account-id>.r2.cloudflarestorage.com

	if bucket == "" || accessKey == "" || secretKey == "" || endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Client{S3: client, Bucket: bucket}, nil
}

// UploadResume stores an applicant's CV under resumes/ and returns its
// public URL plus metadata for the careers mail.
func (r2 *R2Client) UploadResume(ctx context.Context, fileHeader *multipart.FileHeader) (*models.ResumeAttachment, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ct := fileHeader.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(ext)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	objectName := fmt.Sprintf("resumes/%d-%s%s", time.Now().UTC().Unix(), uuid.New().String(), ext)

	_, err = r2.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r2.Bucket),
		Key:          aws.String(objectName),
		Body:         file,
		ContentType:  aws.String(ct),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	return &models.ResumeAttachment{
		PublicURL:  publicURL(objectName),
		ObjectName: objectName,
		FileName:   fileHeader.Filename,
		MimeType:   ct,
		SizeBytes:  fileHeader.Size,
		UploadedAt: time.Now().UTC(),
	}, nil
}

// DeleteCloudObjects removes stored objects, best effort, returning the
// first failure.
func (r2 *R2Client) DeleteCloudObjects(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		_, err := r2.S3.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(r2.Bucket),
			Key:    aws.String(obj),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

// publicURL builds the public URL for a stored object. Set R2_PUBLIC_DOMAIN
// to your custom domain or r2.dev URL, e.g. "https://files.yourdomain.com".
func publicURL(objectName string) string {
	bucket := os.Getenv("R2_BUCKET")
	domain := strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/")
	return fmt.Sprintf("%s/%s/%s", domain, bucket, objectName)
}

type FileValidator struct {
	allowedExt  map[string]bool
	allowedMime map[string]bool
	maxSize     int64
}

// NewResumeValidator gates careers uploads to document types. Override the
// defaults with ALLOWED_FILE_EXTENSIONS / ALLOWED_FILE_MIME_TYPES /
// MAX_UPLOAD_SIZE_MB.
func NewResumeValidator() *FileValidator {
	exts := os.Getenv("ALLOWED_FILE_EXTENSIONS")
	if exts == "" {
		exts = ".pdf,.doc,.docx"
	}
	allowedExt := make(map[string]bool)
	for _, ext := range strings.Split(exts, ",") {
		if ext = strings.TrimSpace(strings.ToLower(ext)); ext != "" {
			allowedExt[ext] = true
		}
	}

	mimes := os.Getenv("ALLOWED_FILE_MIME_TYPES")
	if mimes == "" {
		mimes = "application/pdf,application/msword,application/zip,application/octet-stream"
	}
	allowedMime := make(map[string]bool)
	for _, m := range strings.Split(mimes, ",") {
		if m = strings.TrimSpace(strings.ToLower(m)); m != "" {
			allowedMime[m] = true
		}
	}

	sizeMB := 5
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			sizeMB = parsed
		}
	}

	return &FileValidator{
		allowedExt:  allowedExt,
		allowedMime: allowedMime,
		maxSize:     int64(sizeMB) << 20,
	}
}

func (v *FileValidator) ValidateFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("file too large (max %d MB)", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	if _, err = file.Read(buffer); err != nil {
		return "", fmt.Errorf("failed to read file header")
	}
	if _, err = file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("failed to reset file reader")
	}

	detectedMime := strings.ToLower(http.DetectContentType(buffer))
	if semi := strings.Index(detectedMime, ";"); semi != -1 {
		detectedMime = strings.TrimSpace(detectedMime[:semi])
	}
	if !v.allowedMime[detectedMime] {
		return "", fmt.Errorf("invalid file type")
	}

	return detectedMime, nil
}
