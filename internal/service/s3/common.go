package s3

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ParseS3Url は s3://bucket/prefix 形式をバケットとプレフィックス（末尾 / 付き）に分解する
func ParseS3Url(s3url string) (bucket, prefix string, err error) {
	if !strings.HasPrefix(s3url, "s3://") {
		return "", "", fmt.Errorf("⚠️ S3パスは s3:// で始めてください")
	}
	noPrefix := strings.TrimPrefix(s3url, "s3://")
	parts := strings.SplitN(noPrefix, "/", 2)
	bucket = parts[0]
	if bucket == "" {
		return "", "", fmt.Errorf("⚠️ S3パスにバケット名がありません: %s", s3url)
	}
	if len(parts) > 1 {
		prefix = parts[1]
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return bucket, prefix, nil
}

// ParseS3ObjectUrl は s3://bucket/key 形式をバケットとオブジェクトキーに分解する
func ParseS3ObjectUrl(s3url string) (bucket, key string, err error) {
	bucket, prefix, err := ParseS3Url(s3url)
	if err != nil {
		return "", "", err
	}
	if prefix != "" && strings.HasSuffix(s3url, "/") {
		return "", "", fmt.Errorf("⚠️ オブジェクトのS3パスは / で終わらないようにしてください: %s", s3url)
	}
	key = strings.TrimSuffix(prefix, "/")
	if key == "" {
		return "", "", fmt.Errorf("⚠️ S3パスにオブジェクトキーがありません: %s", s3url)
	}
	return bucket, key, nil
}

// ResolveSourceDir は ~ を含むパスをホームディレクトリ基準の絶対パスに展開する
func ResolveSourceDir(dir string) (string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("パス '%s' の展開に失敗: %w", dir, err)
	}
	return filepath.Clean(expanded), nil
}
