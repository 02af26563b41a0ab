package cloudfront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"ufops/internal/cli"

	"github.com/tidwall/gjson"
)

// RecoveryAPI はオリジン復旧で呼び出すリモート操作
// aws CLI 経由 (CliAPI) と SDK 経由 (SdkAPI) の2つの実装がある
type RecoveryAPI interface {
	// CreateOriginAccessIdentity はOAIを新規作成し、そのIDを返す
	CreateOriginAccessIdentity(ctx context.Context, callerReference, comment string) (string, error)
	// GetDistributionConfig はディストリビューション設定とETagを取得する
	GetDistributionConfig(ctx context.Context, distributionId string) (*DistributionConfigDocument, error)
	// UpdateDistribution は configPath に書き出した設定で If-Match 付きの更新を行う
	UpdateDistribution(ctx context.Context, distributionId, etag, configPath string) error
	// PutBucketPolicy は policyPath のポリシーでバケットポリシーを上書きする
	// region はバケットのリージョン（空の場合は共通設定のリージョン）
	PutBucketPolicy(ctx context.Context, bucket, region, policyPath string) error
}

// CliAPI は aws コマンドで RecoveryAPI を実装する
type CliAPI struct {
	Runner cli.Runner
}

// NewCliAPI は Runner を使う CliAPI を作成
func NewCliAPI(runner cli.Runner) *CliAPI {
	return &CliAPI{Runner: runner}
}

// originAccessIdentityConfig は create-cloud-front-origin-access-identity に渡す設定
// shorthand 形式ではコメント中のカンマを扱えないためJSONで渡す
type originAccessIdentityConfig struct {
	CallerReference string `json:"CallerReference"`
	Comment         string `json:"Comment"`
}

func (c *CliAPI) CreateOriginAccessIdentity(ctx context.Context, callerReference, comment string) (string, error) {
	oaiConfig, err := json.Marshal(originAccessIdentityConfig{CallerReference: callerReference, Comment: comment})
	if err != nil {
		return "", fmt.Errorf("OAI設定のJSON変換に失敗: %w", err)
	}
	result, err := c.Runner.Run(ctx,
		"cloudfront", "create-cloud-front-origin-access-identity",
		"--cloud-front-origin-access-identity-config", string(oaiConfig),
	)
	if err != nil {
		return "", err
	}

	id := gjson.Get(result.Stdout, "CloudFrontOriginAccessIdentity.Id")
	if !id.Exists() || id.String() == "" {
		return "", fmt.Errorf("OAI作成結果にIdが含まれていません: %s", result.Stdout)
	}
	return id.String(), nil
}

func (c *CliAPI) GetDistributionConfig(ctx context.Context, distributionId string) (*DistributionConfigDocument, error) {
	result, err := c.Runner.Run(ctx, "cloudfront", "get-distribution-config", "--id", distributionId)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(result.Stdout) {
		return nil, fmt.Errorf("get-distribution-config の出力がJSONではありません: %s", result.Stdout)
	}

	etag := gjson.Get(result.Stdout, "ETag")
	rawConfig := gjson.Get(result.Stdout, "DistributionConfig")
	if !etag.Exists() || !rawConfig.IsObject() {
		return nil, fmt.Errorf("get-distribution-config の出力に ETag または DistributionConfig がありません")
	}

	cfg, err := decodeConfig([]byte(rawConfig.Raw))
	if err != nil {
		return nil, err
	}
	return &DistributionConfigDocument{ETag: etag.String(), Config: cfg}, nil
}

func (c *CliAPI) UpdateDistribution(ctx context.Context, distributionId, etag, configPath string) error {
	_, err := c.Runner.Run(ctx,
		"cloudfront", "update-distribution",
		"--id", distributionId,
		"--if-match", etag,
		"--distribution-config", "file://"+configPath,
	)
	return err
}

func (c *CliAPI) PutBucketPolicy(ctx context.Context, bucket, region, policyPath string) error {
	args := []string{
		"s3api", "put-bucket-policy",
		"--bucket", bucket,
		"--policy", "file://" + policyPath,
	}
	if region != "" {
		args = append(args, "--region", region)
	}
	_, err := c.Runner.Run(ctx, args...)
	return err
}

// decodeConfig は数値の精度を保ったまま設定JSONをマップに読み込む
func decodeConfig(data []byte) (map[string]interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var cfg map[string]interface{}
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("ディストリビューション設定の解析に失敗: %w", err)
	}
	return cfg, nil
}
