package cloudfront

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"ufops/internal/service/cfn"
	"ufops/internal/service/common"

	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
)

// GetDistributionAPI はディストリビューション詳細取得に必要なCloudFront APIのサブセット
type GetDistributionAPI interface {
	GetDistribution(ctx context.Context, params *cloudfront.GetDistributionInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetDistributionOutput, error)
}

// SelectDistribution は複数のディストリビューションから一つを選択します
func SelectDistribution(ctx context.Context, client GetDistributionAPI, distributionIds []string, in io.Reader) (string, error) {
	fmt.Println("\n複数のCloudFrontディストリビューションが見つかりました。選択してください:")

	// 各ディストリビューションの詳細情報を取得して表示
	items := make([]string, len(distributionIds))
	for i, id := range distributionIds {
		info, err := describeDistribution(ctx, client, id)
		if err != nil {
			// エラーが発生してもIDは表示
			items[i] = id + " (詳細情報の取得に失敗)"
			continue
		}
		items[i] = fmt.Sprintf("%s - %s (%s)", id, info.DomainName, info.Comment)
	}
	common.PrintNumberedList(os.Stdout, common.ListOutput{
		Title:        "CloudFrontディストリビューション一覧",
		Items:        items,
		ResourceName: "ディストリビューション",
	})

	// ユーザーの選択を待つ
	reader := bufio.NewReader(in)
	fmt.Printf("\n番号を入力してください (1-%d): ", len(distributionIds))

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("入力エラー: %w", err)
	}

	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > len(distributionIds) {
		return "", fmt.Errorf("無効な選択です")
	}

	selectedId := distributionIds[choice-1]
	fmt.Printf("\n✅ ディストリビューション '%s' を選択しました\n", selectedId)

	return selectedId, nil
}

func describeDistribution(ctx context.Context, client GetDistributionAPI, id string) (DistributionInfo, error) {
	result, err := client.GetDistribution(ctx, &cloudfront.GetDistributionInput{Id: &id})
	if err != nil {
		return DistributionInfo{}, err
	}

	info := DistributionInfo{Id: id}
	dist := result.Distribution
	if dist == nil {
		return info, nil
	}
	if dist.DomainName != nil {
		info.DomainName = *dist.DomainName
	}
	if dist.DistributionConfig != nil && dist.DistributionConfig.Comment != nil {
		info.Comment = *dist.DistributionConfig.Comment
	}
	return info, nil
}

// ResolveDistributionId はディストリビューションIDを解決します
// IDが指定されていればそのまま使い、なければスタック内のディストリビューションから決定する
func ResolveDistributionId(ctx context.Context, cfClient GetDistributionAPI, cfnClient cfn.DescribeStackResourcesAPI, distributionId, stackName string, in io.Reader) (string, error) {
	if distributionId != "" {
		return distributionId, nil
	}

	if stackName == "" {
		return "", fmt.Errorf("ディストリビューションID またはスタック名 (-S) を指定してください")
	}

	distributions, err := cfn.GetAllCloudFrontFromStack(ctx, cfnClient, stackName)
	if err != nil {
		return "", fmt.Errorf("CloudFormationスタックからディストリビューションの取得に失敗: %w", err)
	}

	if len(distributions) == 0 {
		return "", fmt.Errorf("スタック '%s' にCloudFrontディストリビューションが見つかりませんでした", stackName)
	}

	if len(distributions) == 1 {
		fmt.Printf("✅ CloudFormationスタック '%s' からCloudFrontディストリビューション '%s' を検出しました\n", stackName, distributions[0])
		return distributions[0], nil
	}

	return SelectDistribution(ctx, cfClient, distributions, in)
}
