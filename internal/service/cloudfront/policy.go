package cloudfront

import "fmt"

// BucketPolicy はS3バケットポリシードキュメント
type BucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

// PolicyStatement はバケットポリシーのステートメント
type PolicyStatement struct {
	Sid       string            `json:"Sid"`
	Effect    string            `json:"Effect"`
	Principal map[string]string `json:"Principal"`
	Action    string            `json:"Action"`
	Resource  string            `json:"Resource"`
}

// OriginAccessIdentityArn はOAIをバケットポリシーのプリンシパルとして表すARNを返す
func OriginAccessIdentityArn(oaiId string) string {
	return "arn:aws:iam::cloudfront:user/CloudFront Origin Access Identity " + oaiId
}

// NewBucketPolicy はOAIにバケット内の全オブジェクトの読み取りを許可するポリシーを作成
func NewBucketPolicy(bucket, oaiId string) BucketPolicy {
	return BucketPolicy{
		Version: "2012-10-17",
		Statement: []PolicyStatement{
			{
				Sid:    "AllowCloudFrontOAI",
				Effect: "Allow",
				Principal: map[string]string{
					"AWS": OriginAccessIdentityArn(oaiId),
				},
				Action:   "s3:GetObject",
				Resource: fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
}
