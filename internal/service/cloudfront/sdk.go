package cloudfront

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"ufops/internal/log"
	"ufops/internal/service/common"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// CloudFrontAPI はオリジン復旧に必要なCloudFront APIのサブセット
type CloudFrontAPI interface {
	CreateCloudFrontOriginAccessIdentity(ctx context.Context, params *cloudfront.CreateCloudFrontOriginAccessIdentityInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateCloudFrontOriginAccessIdentityOutput, error)
	GetDistributionConfig(ctx context.Context, params *cloudfront.GetDistributionConfigInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionConfigOutput, error)
	UpdateDistribution(ctx context.Context, params *cloudfront.UpdateDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.UpdateDistributionOutput, error)
}

// BucketPolicyAPI はバケットポリシー更新に必要なS3 APIのサブセット
type BucketPolicyAPI interface {
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
}

// SdkAPI は aws-sdk-go-v2 で RecoveryAPI を実装する
type SdkAPI struct {
	CloudFront CloudFrontAPI
	S3         BucketPolicyAPI
}

// NewSdkAPI はSDKクライアントを使う SdkAPI を作成
func NewSdkAPI(cfClient CloudFrontAPI, s3Client BucketPolicyAPI) *SdkAPI {
	return &SdkAPI{CloudFront: cfClient, S3: s3Client}
}

func (a *SdkAPI) CreateOriginAccessIdentity(ctx context.Context, callerReference, comment string) (string, error) {
	log.Debugf("CreateCloudFrontOriginAccessIdentity callerReference=%s", callerReference)
	out, err := a.CloudFront.CreateCloudFrontOriginAccessIdentity(ctx, &cloudfront.CreateCloudFrontOriginAccessIdentityInput{
		CloudFrontOriginAccessIdentityConfig: &types.CloudFrontOriginAccessIdentityConfig{
			CallerReference: aws.String(callerReference),
			Comment:         aws.String(comment),
		},
	})
	if err != nil {
		return "", err
	}
	if out.CloudFrontOriginAccessIdentity == nil || aws.ToString(out.CloudFrontOriginAccessIdentity.Id) == "" {
		return "", fmt.Errorf("OAI作成結果にIdが含まれていません")
	}
	return aws.ToString(out.CloudFrontOriginAccessIdentity.Id), nil
}

func (a *SdkAPI) GetDistributionConfig(ctx context.Context, distributionId string) (*DistributionConfigDocument, error) {
	log.Debugf("GetDistributionConfig id=%s", distributionId)
	out, err := a.CloudFront.GetDistributionConfig(ctx, &cloudfront.GetDistributionConfigInput{
		Id: aws.String(distributionId),
	})
	if err != nil {
		return nil, err
	}
	if out.DistributionConfig == nil {
		return nil, fmt.Errorf("ディストリビューション '%s' の設定が空です", distributionId)
	}

	// CLIと同じ形のJSONドキュメントに変換して書き換え処理を共通化する
	data, err := json.Marshal(out.DistributionConfig)
	if err != nil {
		return nil, fmt.Errorf("ディストリビューション設定の変換に失敗: %w", err)
	}
	cfg, err := decodeConfig(data)
	if err != nil {
		return nil, err
	}
	return &DistributionConfigDocument{ETag: aws.ToString(out.ETag), Config: cfg}, nil
}

func (a *SdkAPI) UpdateDistribution(ctx context.Context, distributionId, etag, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗: %w", configPath, err)
	}
	var distributionConfig types.DistributionConfig
	if err := json.Unmarshal(data, &distributionConfig); err != nil {
		return fmt.Errorf("%s の解析に失敗: %w", configPath, err)
	}

	log.Debugf("UpdateDistribution id=%s ifMatch=%s", distributionId, etag)
	_, err = a.CloudFront.UpdateDistribution(ctx, &cloudfront.UpdateDistributionInput{
		Id:                 aws.String(distributionId),
		IfMatch:            aws.String(etag),
		DistributionConfig: &distributionConfig,
	})
	if common.IsPreconditionFailed(err) {
		return fmt.Errorf("ETag '%s' が最新ではありません（取得後に他の更新が行われた可能性があります）: %w", etag, err)
	}
	return err
}

func (a *SdkAPI) PutBucketPolicy(ctx context.Context, bucket, region, policyPath string) error {
	data, err := os.ReadFile(policyPath)
	if err != nil {
		return fmt.Errorf("%s の読み込みに失敗: %w", policyPath, err)
	}

	var optFns []func(*s3.Options)
	if region != "" {
		optFns = append(optFns, func(o *s3.Options) { o.Region = region })
	}

	log.Debugf("PutBucketPolicy bucket=%s region=%s", bucket, region)
	_, err = a.S3.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(string(data)),
	}, optFns...)
	return err
}
