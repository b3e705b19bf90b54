package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore 将图片写入本地目录, 由 /uploads 静态路由对外提供
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if dir == "" {
		dir = "uploads"
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create upload dir %s", dir)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) URLPrefix() string {
	return s.urlPrefix
}

// Save 先写临时文件再重命名, 避免读到写了一半的图片
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", errors.New("invalid file name")
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", errors.Wrap(err, "create temp file")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		_ = tmp.Close()
		return "", errors.Wrap(err, "write upload")
	}
	if err = tmp.Close(); err != nil {
		return "", errors.Wrap(err, "close upload")
	}
	if err = os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", errors.Wrap(err, "move upload")
	}

	return path.Join(s.urlPrefix, name), nil
}

// Delete 删除 URL 对应的本地文件, 不属于本存储的 URL 直接忽略
func (s *LocalStore) Delete(_ context.Context, url string) error {
	if !strings.HasPrefix(url, s.urlPrefix+"/") {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(url, s.urlPrefix+"/"))
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove %s", name)
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}
