package s3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ufops/internal/log"
	"ufops/internal/service/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/schollz/progressbar/v3"
)

// Uploader は manager.Uploader のうちアップロード処理で使うメソッド
type Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// UploadFile はローカルファイルを Content-Type を明示してS3にアップロードする
func UploadFile(ctx context.Context, uploader Uploader, bucket, key, localPath, contentType string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("ファイル '%s' を開けません: %w", localPath, err)
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil {
		log.Debugf("upload %s (%s) -> s3://%s/%s", localPath, common.FormatBytes(info.Size()), bucket, key)
	}

	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	return err
}

// UploadAssets はアップロード一覧を順番に処理する
// 1件の失敗で中断せず、すべての件の結果を返す
func UploadAssets(ctx context.Context, uploader Uploader, opts UploadOptions, items []UploadItem) []common.ProcessResult {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	fmt.Printf("📂 アップロード元: %s\n", opts.SourceDir)

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(items),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("アップロード中..."),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionShowCount(),
		)
	}

	results := make([]common.ProcessResult, 0, len(items))
	for _, item := range items {
		localPath := filepath.Join(opts.SourceDir, item.Source)
		key := opts.Prefix + item.Key
		fmt.Printf("%s %s を s3://%s/%s にアップロード中...\n", common.UploadIcon, item.Source, opts.Bucket, key)

		err := UploadFile(ctx, uploader, opts.Bucket, key, localPath, contentType)
		if err != nil {
			fmt.Printf(common.UploadErrorFormat+"\n", common.ErrorIcon, item.Key, err)
			results = append(results, common.ProcessResult{Item: item.Key, Success: false, Error: err})
		} else {
			fmt.Printf(common.UploadSuccessFormat+"\n", common.SuccessIcon, item.Key)
			results = append(results, common.ProcessResult{Item: item.Key, Success: true})
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	return results
}

// UploadPreset はプリセット画像1件をアップロードする
func UploadPreset(ctx context.Context, uploader Uploader, opts UploadOptions, item UploadItem) error {
	contentType := opts.ContentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	localPath := filepath.Join(opts.SourceDir, item.Source)
	key := opts.Prefix + item.Key
	fmt.Printf("%s %s を s3://%s/%s にアップロード中...\n", common.UploadIcon, item.Source, opts.Bucket, key)

	if err := UploadFile(ctx, uploader, opts.Bucket, key, localPath, contentType); err != nil {
		return fmt.Errorf("%s のアップロードに失敗: %w", key, err)
	}
	fmt.Printf("%s 画像を更新しました: %s\n", common.SuccessIcon, key)
	return nil
}
