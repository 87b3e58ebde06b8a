package main

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/Backblaze/blazer/b2"
	"github.com/dsnet/compress/bzip2"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/ulikunitz/xz"
	xzReader "github.com/xi2/xz"
	"google.golang.org/api/option"
)

var GCSBucket *storage.BucketHandle
var B2Bucket *b2.Bucket

// stackedReader closes every layer of a decompression chain
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// stackedWriter flushes and closes every layer of a compression chain
type stackedWriter struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriter) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

func initializeBucket(ctx context.Context, config *Config, pathOpt string) error {
	u, err := url.Parse(pathOpt)
	if err != nil {
		return err
	}

	switch u.Scheme {
	case "http", "https":
		// nothing to do here
	case "gs":
		if GCSBucket != nil {
			return nil
		}

		if config.GCSServiceAccount == "" {
			return errors.New("missing GCS_SVC_ACC for GCS access")
		}

		client, err := storage.NewClient(ctx, option.WithCredentialsFile(config.GCSServiceAccount))
		if err != nil {
			return fmt.Errorf("error creating the GCS client %w", err)
		}

		GCSBucket = client.Bucket(u.Host)
	case "b2":
		if B2Bucket != nil {
			return nil
		}

		if config.B2KeyId == "" || config.B2AppKey == "" {
			return errors.New("missing required B2 environment variables")
		}

		client, err := b2.NewClient(ctx, config.B2KeyId, config.B2AppKey)
		if err != nil {
			return err
		}

		B2Bucket, err = client.Bucket(ctx, u.Host)
		if err != nil {
			return err
		}
	default:
		_, err := os.Stat(u.Path)
		if os.IsNotExist(err) {
			return errors.New("path does not exist")
		}
	}

	return nil
}

// Report whether err means the object at the requested path is missing
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, storage.ErrObjectNotExist) ||
		b2.IsNotExist(err)
}

func putData(ctx context.Context, suffix, outputPath string) (io.WriteCloser, error) {
	filePath := fmt.Sprintf("%s/%s", strings.TrimSuffix(outputPath, "/"), suffix)

	var writer io.WriteCloser
	u, err := url.Parse(filePath)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "gs":
		dst := strings.TrimPrefix(u.Path, "/")
		writer = GCSBucket.Object(dst).NewWriter(ctx)
	case "b2":
		dst := strings.TrimPrefix(u.Path, "/")
		writer = B2Bucket.Object(dst).NewWriter(ctx)
	default:
		file, err := os.Create(filePath)
		if err != nil {
			return nil, err
		}
		writer = file
	}

	out := &stackedWriter{
		Writer:  writer,
		closers: []io.Closer{writer},
	}

	if strings.HasSuffix(suffix, ".xz") {
		xzWriter, err := xz.NewWriter(writer)
		if err != nil {
			writer.Close()
			return nil, err
		}
		out.Writer = xzWriter
		out.closers = append(out.closers, xzWriter)
	} else if strings.HasSuffix(suffix, ".bz2") {
		bz2Writer, err := bzip2.NewWriter(writer, nil)
		if err != nil {
			writer.Close()
			return nil, err
		}
		out.Writer = bz2Writer
		out.closers = append(out.closers, bz2Writer)
	}

	return out, nil
}

func loadData(ctx context.Context, pathOpt string) (io.ReadCloser, error) {
	var reader io.ReadCloser

	u, err := url.Parse(pathOpt)
	if err != nil {
		return nil, err
	}
	switch u.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOpt, nil)
		if err != nil {
			return nil, err
		}
		resp, err := cleanhttp.DefaultClient().Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s for %s", resp.Status, pathOpt)
		}

		reader = resp.Body
	case "gs":
		src := strings.TrimPrefix(u.Path, "/")
		obj, err := GCSBucket.Object(src).NewReader(ctx)
		if err != nil {
			return nil, err
		}

		reader = obj
	case "b2":
		src := strings.TrimPrefix(u.Path, "/")
		obj := B2Bucket.Object(src)
		_, err := obj.Attrs(ctx)
		if err != nil {
			return nil, err
		}
		objReader := obj.NewReader(ctx)
		objReader.ConcurrentDownloads = 20

		reader = objReader
	default:
		file, err := os.Open(pathOpt)
		if err != nil {
			return nil, err
		}

		reader = file
	}

	in := &stackedReader{
		Reader:  reader,
		closers: []io.Closer{reader},
	}

	if strings.HasSuffix(pathOpt, "xz") {
		xzReader, err := xzReader.NewReader(reader, 0)
		if err != nil {
			reader.Close()
			return nil, err
		}
		in.Reader = xzReader
	} else if strings.HasSuffix(pathOpt, "bz2") {
		bz2Reader, err := bzip2.NewReader(reader, nil)
		if err != nil {
			reader.Close()
			return nil, err
		}
		in.Reader = bz2Reader
		in.closers = append(in.closers, bz2Reader)
	} else if strings.HasSuffix(pathOpt, "gz") {
		zipReader, err := gzip.NewReader(reader)
		if err != nil {
			reader.Close()
			return nil, err
		}
		in.Reader = zipReader
		in.closers = append(in.closers, zipReader)
	}

	return in, nil
}
