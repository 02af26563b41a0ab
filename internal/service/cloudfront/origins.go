package cloudfront

import (
	"context"
	"fmt"
	"io"

	"ufops/internal/service/common"
)

// ListOrigins はディストリビューションのオリジン一覧を取得する
func ListOrigins(ctx context.Context, api RecoveryAPI, distributionId, match string) ([]OriginSummary, error) {
	doc, err := api.GetDistributionConfig(ctx, distributionId)
	if err != nil {
		return nil, fmt.Errorf(common.GetErrorFormat, common.ErrorIcon, "ディストリビューション設定", err)
	}
	return SummarizeOrigins(doc.Config, match), nil
}

// PrintOrigins はオリジン一覧を表形式で出力する（復旧対象の行に * を付ける）
func PrintOrigins(w io.Writer, origins []OriginSummary) {
	if len(origins) == 0 {
		fmt.Fprintln(w, common.FormatEmptyMessage("オリジン"))
		return
	}

	rows := make([][]string, 0, len(origins))
	for _, o := range origins {
		mark := ""
		if o.Matched {
			mark = "*"
		}
		rows = append(rows, []string{mark, o.Id, o.DomainName, dashIfEmpty(o.OriginAccessIdentity), dashIfEmpty(o.OriginAccessControlId)})
	}
	common.PrintTable(w, []string{"", "ID", "DomainName", "OAI", "OAC"}, rows)
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
