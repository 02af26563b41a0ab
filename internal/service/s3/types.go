package s3

import "io"

// UploadItem はアップロード対象1件（ローカルファイル名とアップロード先キー）
type UploadItem struct {
	Source string `yaml:"source"` // SourceDir からの相対パス
	Key    string `yaml:"key"`    // プレフィックス配下のキー
}

// UploadOptions はアップロード処理の共通オプション
type UploadOptions struct {
	Bucket      string    // 必須: アップロード先バケット
	Prefix      string    // オプション: キーのプレフィックス（末尾 / 付き）
	SourceDir   string    // 必須: ローカルファイルの基準ディレクトリ（~ 展開済み）
	ContentType string    // オプション: Content-Type（デフォルト: image/png）
	Progress    io.Writer // オプション: 指定時はプログレスバーを表示
}
