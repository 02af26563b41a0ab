package cmd

import (
	"fmt"
	"os"

	"ufops/internal/service/common"
	s3svc "ufops/internal/service/s3"

	"github.com/spf13/cobra"
)

const (
	defaultAssetDest  = "s3://uniforge-assets/game-assets/"
	defaultPresetDest = "s3://uniforge-assets/presets/green_warrior.png"
)

// S3Cmd represents the s3 command
var S3Cmd = &cobra.Command{
	Use:   "s3",
	Short: "S3リソース操作コマンド",
}

// s3UploadAssetsCmd represents the upload-assets command
var s3UploadAssetsCmd = &cobra.Command{
	Use:   "upload-assets",
	Short: "ゲームアセット画像を一括アップロードするコマンド",
	Long: `ローカルの画像ファイルを決められたキーでS3に一括アップロードします。
1件失敗しても残りのアップロードは続行し、最後に結果をまとめて表示します。

【使い方】
  ` + AppName + ` s3 upload-assets
  ` + AppName + ` s3 upload-assets --dest s3://my-bucket/assets/ --source-dir ~/images
  ` + AppName + ` s3 upload-assets --manifest assets.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		dest, _ := cmdCobra.Flags().GetString("dest")
		sourceDir, _ := cmdCobra.Flags().GetString("source-dir")
		manifest, _ := cmdCobra.Flags().GetString("manifest")
		contentType, _ := cmdCobra.Flags().GetString("content-type")
		noProgress, _ := cmdCobra.Flags().GetBool("no-progress")

		// 個々の失敗は報告のみで、終了コードは常に0
		opts, err := newUploadOptions(sourceDir, contentType)
		if err == nil {
			opts.Bucket, opts.Prefix, err = s3svc.ParseS3Url(dest)
		}
		if err != nil {
			fmt.Printf("❌ エラー: %v\n", err)
			return nil
		}
		if !noProgress {
			opts.Progress = os.Stderr
		}

		items := s3svc.DefaultAssetManifest()
		if manifest != "" {
			items, err = s3svc.LoadManifest(manifest)
			if err != nil {
				fmt.Printf("❌ エラー: %v\n", err)
				return nil
			}
		}

		clients, err := newAwsClients()
		if err != nil {
			fmt.Println(err)
			return nil
		}

		results := s3svc.UploadAssets(cmdCobra.Context(), clients.Uploader(), opts, items)
		common.PrintResultSummary("ファイル", results)
		return nil
	},
	SilenceUsage: true,
}

// s3UploadPresetCmd represents the upload-preset command
var s3UploadPresetCmd = &cobra.Command{
	Use:   "upload-preset",
	Short: "プリセット画像を1件アップロードするコマンド",
	Long: `プリセット画像を1件S3にアップロードします（既存オブジェクトは上書き）。
失敗した場合もエラーを表示して正常終了します。

【使い方】
  ` + AppName + ` s3 upload-preset
  ` + AppName + ` s3 upload-preset --source my_image.png --dest s3://uniforge-assets/presets/red_warrior.png`,
	Args: cobra.NoArgs,
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		dest, _ := cmdCobra.Flags().GetString("dest")
		sourceDir, _ := cmdCobra.Flags().GetString("source-dir")
		source, _ := cmdCobra.Flags().GetString("source")
		contentType, _ := cmdCobra.Flags().GetString("content-type")

		item := s3svc.UploadItem{Source: source}
		opts, err := newUploadOptions(sourceDir, contentType)
		if err == nil {
			opts.Bucket, item.Key, err = s3svc.ParseS3ObjectUrl(dest)
		}
		if err != nil {
			fmt.Printf("❌ エラー: %v\n", err)
			return nil
		}

		clients, err := newAwsClients()
		if err != nil {
			fmt.Println(err)
			return nil
		}

		if err := s3svc.UploadPreset(cmdCobra.Context(), clients.Uploader(), opts, item); err != nil {
			fmt.Printf("❌ エラー: %v\n", err)
		}
		return nil
	},
	SilenceUsage: true,
}

// newUploadOptions はフラグの値からアップロードオプションの共通部分を組み立てる
func newUploadOptions(sourceDir, contentType string) (s3svc.UploadOptions, error) {
	dir, err := s3svc.ResolveSourceDir(sourceDir)
	if err != nil {
		return s3svc.UploadOptions{}, err
	}
	return s3svc.UploadOptions{SourceDir: dir, ContentType: contentType}, nil
}

func init() {
	RootCmd.AddCommand(S3Cmd)
	S3Cmd.AddCommand(s3UploadAssetsCmd)
	S3Cmd.AddCommand(s3UploadPresetCmd)

	s3UploadAssetsCmd.Flags().String("dest", defaultAssetDest, "アップロード先 (s3://bucket/prefix/)")
	s3UploadAssetsCmd.Flags().String("source-dir", s3svc.DefaultSourceDir, "アップロード元ディレクトリ")
	s3UploadAssetsCmd.Flags().String("manifest", "", "アップロード一覧のYAMLファイル（未指定時は既定の5ファイル）")
	s3UploadAssetsCmd.Flags().String("content-type", s3svc.DefaultContentType, "Content-Type")
	s3UploadAssetsCmd.Flags().Bool("no-progress", false, "プログレスバーを表示しない")

	s3UploadPresetCmd.Flags().String("dest", defaultPresetDest, "アップロード先 (s3://bucket/key)")
	s3UploadPresetCmd.Flags().String("source-dir", s3svc.DefaultSourceDir, "アップロード元ディレクトリ")
	s3UploadPresetCmd.Flags().String("source", s3svc.DefaultPresetItem().Source, "アップロードするファイル名")
	s3UploadPresetCmd.Flags().String("content-type", s3svc.DefaultContentType, "Content-Type")
}
