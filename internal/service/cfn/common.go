package cfn

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// DescribeStackResourcesAPI はスタックリソース取得に必要なCloudFormation APIのサブセット
type DescribeStackResourcesAPI interface {
	DescribeStackResources(ctx context.Context, params *cloudformation.DescribeStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourcesOutput, error)
}

// GetStackResources はスタックからリソース一覧を取得する関数
func GetStackResources(ctx context.Context, cfnClient DescribeStackResourcesAPI, stackName string) ([]types.StackResource, error) {
	fmt.Printf("🔍 スタック '%s' からリソースを検索中...\n", stackName)
	resp, err := cfnClient.DescribeStackResources(ctx, &cloudformation.DescribeStackResourcesInput{
		StackName: awssdk.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("CloudFormationスタックのリソース取得に失敗: %w", err)
	}

	// スタック存在確認
	if len(resp.StackResources) == 0 {
		return nil, fmt.Errorf("スタック '%s' にリソースが見つかりませんでした", stackName)
	}

	return resp.StackResources, nil
}

// GetAllCloudFrontFromStack はスタック内のすべてのCloudFrontディストリビューションIDを返す
func GetAllCloudFrontFromStack(ctx context.Context, cfnClient DescribeStackResourcesAPI, stackName string) ([]string, error) {
	stackResources, err := GetStackResources(ctx, cfnClient, stackName)
	if err != nil {
		return nil, err
	}

	var distributions []string
	for _, resource := range stackResources {
		if resource.ResourceType == nil || *resource.ResourceType != "AWS::CloudFront::Distribution" {
			continue
		}
		if resource.PhysicalResourceId == nil || *resource.PhysicalResourceId == "" {
			continue
		}
		distributions = append(distributions, *resource.PhysicalResourceId)
		fmt.Printf("🔍 検出されたCloudFrontディストリビューション: %s\n", *resource.PhysicalResourceId)
	}

	return distributions, nil
}
