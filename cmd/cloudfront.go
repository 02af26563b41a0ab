package cmd

import (
	"context"
	"fmt"
	"os"

	"ufops/internal/cli"
	cfsvc "ufops/internal/service/cloudfront"
	"ufops/internal/service/common"

	"github.com/spf13/cobra"
)

const (
	defaultDistributionId = "E2C82OGQQLZ3BB"
	defaultAssetBucket    = "uniforge-assets"
	defaultBucketRegion   = "ap-northeast-2"
	defaultOriginMatch    = "s3.ap-northeast-2.amazonaws.com"
)

// CfCmd represents the cf command
var CfCmd = &cobra.Command{
	Use:          "cf",
	Short:        "CloudFrontリソース操作コマンド",
	SilenceUsage: true,
}

// cfRecoverCmd represents the recover command
var cfRecoverCmd = &cobra.Command{
	Use:   "recover [distribution-id]",
	Short: "CloudFrontオリジンをOAI付きでアセットバケットへ向け直すコマンド",
	Long: `誤った設定になったCloudFrontディストリビューションのS3オリジンを復旧します。

  1. 新しいOAI (Origin Access Identity) を作成
  2. ディストリビューション設定を取得し、DomainName がパターンに一致するすべてのオリジンを
     <bucket>.s3.<region>.amazonaws.com に向け直してOAIを設定（OACはクリア）
  3. dist-config.json に書き出して If-Match(ETag) 付きで更新
  4. OAIに s3:GetObject を許可するバケットポリシーを bucket-policy.json に書き出して上書き

⚠️ 実行のたびに新しいOAIが作成されます。途中で失敗しても作成済みのOAIは削除されません。

【使い方】
  ` + AppName + ` cf recover                              # 既定のディストリビューションを復旧
  ` + AppName + ` cf recover E2ABC123DEF456 -b my-bucket
  ` + AppName + ` cf recover -S my-stack --via sdk         # スタックから自動検出しSDKで実行`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		ctx := cmdCobra.Context()
		via, _ := cmdCobra.Flags().GetString("via")

		distributionId, err := resolveDistribution(ctx, args)
		if err != nil {
			return err
		}

		api, err := newRecoveryAPI(via)
		if err != nil {
			return err
		}

		opts := cfsvc.RecoverOptions{DistributionId: distributionId}
		opts.BucketName, _ = cmdCobra.Flags().GetString("bucket")
		opts.BucketRegion, _ = cmdCobra.Flags().GetString("bucket-region")
		opts.OriginMatch, _ = cmdCobra.Flags().GetString("match")
		opts.Comment, _ = cmdCobra.Flags().GetString("comment")
		opts.ConfigPath, _ = cmdCobra.Flags().GetString("config-out")
		opts.PolicyPath, _ = cmdCobra.Flags().GetString("policy-out")

		_, err = cfsvc.Recover(ctx, api, opts)
		return err
	},
}

// cfOriginsCmd represents the origins command
var cfOriginsCmd = &cobra.Command{
	Use:   "origins [distribution-id]",
	Short: "ディストリビューションのオリジン一覧を表示するコマンド",
	Long: `ディストリビューションのオリジン一覧を表示します。
recover で書き換え対象になるオリジンには * が付きます。

【使い方】
  ` + AppName + ` cf origins
  ` + AppName + ` cf origins E2ABC123DEF456 -m "*.s3.*.amazonaws.com"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		ctx := cmdCobra.Context()
		via, _ := cmdCobra.Flags().GetString("via")
		match, _ := cmdCobra.Flags().GetString("match")

		distributionId, err := resolveDistribution(ctx, args)
		if err != nil {
			return err
		}

		api, err := newRecoveryAPI(via)
		if err != nil {
			return err
		}

		origins, err := cfsvc.ListOrigins(ctx, api, distributionId, match)
		if err != nil {
			return err
		}

		fmt.Printf("%s オリジン一覧 (ディストリビューション: %s)\n", common.InfoIcon, distributionId)
		cfsvc.PrintOrigins(os.Stdout, origins)
		return nil
	},
	SilenceUsage: true,
}

// resolveDistribution は引数・スタック名・既定値の順でディストリビューションIDを決定する
func resolveDistribution(ctx context.Context, args []string) (string, error) {
	resolveStackName()

	if len(args) > 0 {
		return args[0], nil
	}
	if stackName == "" {
		fmt.Printf("🔍 既定のディストリビューション '%s' を使用します\n", defaultDistributionId)
		return defaultDistributionId, nil
	}

	clients, err := newAwsClients()
	if err != nil {
		return "", err
	}
	distributionId, err := cfsvc.ResolveDistributionId(ctx, clients.CloudFront(), clients.Cfn(), "", stackName, os.Stdin)
	if err != nil {
		return "", fmt.Errorf("❌ %w", err)
	}
	return distributionId, nil
}

// newRecoveryAPI は --via の値に応じて aws CLI 版か SDK 版の実装を返す
func newRecoveryAPI(via string) (cfsvc.RecoveryAPI, error) {
	switch via {
	case "cli":
		return cfsvc.NewCliAPI(cli.NewAwsCli(profile, region)), nil
	case "sdk":
		clients, err := newAwsClients()
		if err != nil {
			return nil, err
		}
		return cfsvc.NewSdkAPI(clients.CloudFront(), clients.S3()), nil
	default:
		return nil, fmt.Errorf("❌ エラー: --via には cli または sdk を指定してください (指定値: %s)", via)
	}
}

func init() {
	RootCmd.AddCommand(CfCmd)
	CfCmd.AddCommand(cfRecoverCmd)
	CfCmd.AddCommand(cfOriginsCmd)

	cfRecoverCmd.Flags().StringP("bucket", "b", defaultAssetBucket, "オリジンの向き先S3バケット")
	cfRecoverCmd.Flags().String("bucket-region", defaultBucketRegion, "S3バケットのリージョン")
	cfRecoverCmd.Flags().StringP("match", "m", defaultOriginMatch, "書き換え対象オリジンのDomainName（部分一致、* を含む場合はglob）")
	cfRecoverCmd.Flags().String("comment", "", "OAIのコメント（デフォルト: Recovery-OAI-for-<bucket>）")
	cfRecoverCmd.Flags().String("config-out", cfsvc.DefaultConfigPath, "ディストリビューション設定の書き出し先")
	cfRecoverCmd.Flags().String("policy-out", cfsvc.DefaultPolicyPath, "バケットポリシーの書き出し先")
	cfRecoverCmd.Flags().String("via", "cli", "AWSの呼び出し方法 (cli: aws コマンド / sdk: aws-sdk-go-v2)")

	cfOriginsCmd.Flags().StringP("match", "m", defaultOriginMatch, "復旧対象として印を付けるDomainNameパターン")
	cfOriginsCmd.Flags().String("via", "cli", "AWSの呼び出し方法 (cli: aws コマンド / sdk: aws-sdk-go-v2)")
}
