package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Clients はAWS設定と各サービスクライアントを管理
type Clients struct {
	cfg aws.Config

	// 遅延初期化されるクライアント群
	cloudFront *cloudfront.Client
	cfn        *cloudformation.Client
	s3         *s3.Client
	uploader   *manager.Uploader
}

// NewAwsClients は認証情報からAWS設定を読み込んでクライアント管理構造体を作成
func NewAwsClients(ctx *Context) (*Clients, error) {
	cfg, err := ctx.GetConfig()
	if err != nil {
		return nil, err
	}

	return &Clients{cfg: cfg}, nil
}

// CloudFront は遅延初期化でCloudFrontクライアントを取得
func (c *Clients) CloudFront() *cloudfront.Client {
	if c.cloudFront == nil {
		c.cloudFront = cloudfront.NewFromConfig(c.cfg)
	}
	return c.cloudFront
}

// Cfn は遅延初期化でCloudFormationクライアントを取得
func (c *Clients) Cfn() *cloudformation.Client {
	if c.cfn == nil {
		c.cfn = cloudformation.NewFromConfig(c.cfg)
	}
	return c.cfn
}

// S3 は遅延初期化でS3クライアントを取得
func (c *Clients) S3() *s3.Client {
	if c.s3 == nil {
		c.s3 = s3.NewFromConfig(c.cfg)
	}
	return c.s3
}

// Uploader は遅延初期化でS3アップロードマネージャーを取得
func (c *Clients) Uploader() *manager.Uploader {
	if c.uploader == nil {
		c.uploader = manager.NewUploader(c.S3())
	}
	return c.uploader
}
