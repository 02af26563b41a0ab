package cloudfront

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ufops/internal/log"
	"ufops/internal/service/common"
)

const (
	DefaultConfigPath = "dist-config.json"
	DefaultPolicyPath = "bucket-policy.json"
)

var nowFunc = time.Now

// newCallerReference は実行ごとに異なるCallerReferenceを生成する
// 再実行のたびに新しいOAIが作成される（既存OAIの再利用はしない）
func newCallerReference(distributionId string) string {
	return fmt.Sprintf("recovery-%s-%d", distributionId, nowFunc().UnixNano())
}

// Recover はOAIを作成し、一致するオリジンをバケットへ向け直したうえでバケットポリシーを再設定する
// 途中で失敗した場合も作成済みのOAIは削除しない
func Recover(ctx context.Context, api RecoveryAPI, opts RecoverOptions) (*RecoverResult, error) {
	if opts.DistributionId == "" || opts.BucketName == "" || opts.BucketRegion == "" || opts.OriginMatch == "" {
		return nil, fmt.Errorf("ディストリビューションID・バケット名・リージョン・オリジンパターンはすべて必須です")
	}
	if opts.Comment == "" {
		opts.Comment = "Recovery-OAI-for-" + opts.BucketName
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = DefaultConfigPath
	}
	if opts.PolicyPath == "" {
		opts.PolicyPath = DefaultPolicyPath
	}

	fmt.Printf("🚀 ディストリビューション (%s) のオリジン復旧を開始します...\n", opts.DistributionId)

	// 1. OAI作成
	fmt.Println("🔑 新しいOAIを作成しています...")
	oaiId, err := api.CreateOriginAccessIdentity(ctx, newCallerReference(opts.DistributionId), opts.Comment)
	if err != nil {
		return nil, fmt.Errorf(common.CreateErrorFormat, common.ErrorIcon, "OAI", err)
	}
	fmt.Printf(common.CreateSuccessFormat+": %s\n", common.SuccessIcon, "OAI", oaiId)
	log.WithFields(map[string]interface{}{"oai": oaiId, "distribution": opts.DistributionId}).Info("OAI created")

	// 2. ディストリビューション設定の取得
	fmt.Println("📥 CloudFrontの設定を取得しています...")
	doc, err := api.GetDistributionConfig(ctx, opts.DistributionId)
	if err != nil {
		return nil, fmt.Errorf(common.GetErrorFormat, common.ErrorIcon, "ディストリビューション設定", err)
	}

	// 3. オリジンの書き換え
	fmt.Println("🛠️  設定を書き換えています...")
	changes, err := RewriteOrigins(doc.Config, RewriteRule{
		Match:                opts.OriginMatch,
		DomainName:           BucketDomainName(opts.BucketName, opts.BucketRegion),
		OriginAccessIdentity: OriginAccessIdentityPath(oaiId),
	})
	if err != nil {
		return nil, fmt.Errorf("%s %w (パターン: %s)", common.ErrorIcon, err, opts.OriginMatch)
	}
	for _, change := range changes {
		fmt.Printf("   %s: %s → %s\n", change.Id, change.OldDomainName, change.NewDomainName)
		if change.ClearedOAC {
			fmt.Printf("   %s: 競合を避けるため OriginAccessControlId をクリアしました\n", change.Id)
		}
	}

	if err := writeJSONFile(opts.ConfigPath, doc.Config); err != nil {
		return nil, err
	}

	// 4. ディストリビューションの更新
	fmt.Println(common.ProcessIcon + " CloudFrontディストリビューションを更新しています...")
	if err := api.UpdateDistribution(ctx, opts.DistributionId, doc.ETag, opts.ConfigPath); err != nil {
		return nil, fmt.Errorf(common.UpdateErrorFormat, common.ErrorIcon, "ディストリビューション", err)
	}
	fmt.Printf(common.UpdateSuccessFormat+"\n", common.SuccessIcon, "CloudFrontディストリビューション")

	// 5. バケットポリシーの更新
	fmt.Println(common.ProcessIcon + " S3バケットポリシーを更新しています...")
	policy := NewBucketPolicy(opts.BucketName, oaiId)
	if err := writeJSONFile(opts.PolicyPath, policy); err != nil {
		return nil, err
	}
	if err := api.PutBucketPolicy(ctx, opts.BucketName, opts.BucketRegion, opts.PolicyPath); err != nil {
		return nil, fmt.Errorf(common.UpdateErrorFormat, common.ErrorIcon, "バケットポリシー", err)
	}
	fmt.Printf(common.UpdateSuccessFormat+"\n", common.SuccessIcon, "S3バケットポリシー")

	fmt.Println("🎉 復旧が完了しました")
	return &RecoverResult{
		OriginAccessIdentityId: oaiId,
		ETag:                   doc.ETag,
		Changes:                changes,
		Policy:                 policy,
	}, nil
}

// writeJSONFile は aws コマンドに渡すためのJSONファイルを書き出す
func writeJSONFile(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s のJSON変換に失敗: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%s の書き込みに失敗: %w", path, err)
	}
	log.Debugf("wrote %s (%d bytes)", path, len(data))
	return nil
}
