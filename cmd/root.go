package cmd

import (
	"os"

	awsx "ufops/internal/aws"
	"ufops/internal/log"

	"github.com/spf13/cobra"
)

// AppName はヘルプ表示に使うコマンド名
const AppName = "ufops"

var region string
var profile string
var stackName string

// awsCtx はプロファイル・リージョンとAWS設定のキャッシュを保持する
var awsCtx = &awsx.Context{}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "Uniforge の CloudFront / S3 運用コマンド",
	Long: `Uniforge のアセット配信まわりの運用作業をまとめたCLIです。

  ` + AppName + ` cf recover          CloudFrontオリジンをOAI付きでアセットバケットへ向け直す
  ` + AppName + ` cf origins          ディストリビューションのオリジン一覧を表示
  ` + AppName + ` s3 upload-assets    ゲームアセット画像を一括アップロード
  ` + AppName + ` s3 upload-preset    プリセット画像を1件アップロード`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&region, "region", "R", "ap-northeast-2", "AWSリージョン")
	RootCmd.PersistentFlags().StringVarP(&profile, "profile", "P", "", "AWSプロファイル")
	RootCmd.PersistentFlags().StringVarP(&stackName, "stack", "S", "", "CloudFormationスタック名")

	// コマンド実行前に共通でログとプロファイルの設定を行う
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log.InitLogger()
		if cmd.Name() == "help" {
			return nil
		}
		resolveProfile(cmd)
		awsCtx.Profile = profile
		awsCtx.Region = region
		return nil
	}
}

// resolveProfile はプロファイルを -P オプションまたは AWS_PROFILE 環境変数から決定する
// どちらもない場合はデフォルトの認証チェーンに任せる
func resolveProfile(cmd *cobra.Command) {
	if profile != "" {
		return
	}
	envProfile := os.Getenv("AWS_PROFILE")
	if envProfile == "" {
		return
	}
	profile = envProfile
	// versionコマンド以外の場合のみメッセージを表示
	if cmd.Name() != "version" {
		cmd.Println("🔍 環境変数 AWS_PROFILE の値 '" + profile + "' を使用します")
	}
}
