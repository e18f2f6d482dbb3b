package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
)

// Avatars larger than this are downscaled before storage.
const maxAvatarSize = 512

const webpQuality = 85

// AvatarUploader normalizes uploaded avatars to webp and stores them
// in S3.
type AvatarUploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewAvatarUploader(ctx context.Context, region, accessKey, secretKey, bucket, baseURL string) (*AvatarUploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	return &AvatarUploader{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload decodes the image, downscales it when needed, re-encodes as
// webp and writes it under avatars/<scope>/. Returns the public URL.
func (u *AvatarUploader) Upload(ctx context.Context, scope string, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", httperr.ErrBusiness(httperr.CodeValidation, "unsupported image format")
	}

	src = downscale(src, maxAvatarSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%s.webp", scope, uuid.NewString())
	contentType := "image/webp"

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &u.bucket,
		Key:         &key,
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return u.baseURL + "/" + key, nil
}

func downscale(src image.Image, max int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return src
	}

	if w > h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
