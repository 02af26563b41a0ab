package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ListOutput はリスト表示の共通構造体
type ListOutput struct {
	Title        string   // 例: "CloudFrontディストリビューション一覧"
	Items        []string // 表示するアイテムのリスト
	ResourceName string   // 例: "ディストリビューション", "ファイル"
}

// PrintNumberedList は番号付きリストを表示
func PrintNumberedList(w io.Writer, output ListOutput) {
	fmt.Fprintf(w, "%s: (全%d件)\n", output.Title, len(output.Items))

	if len(output.Items) == 0 {
		fmt.Fprintln(w, FormatEmptyMessage(output.ResourceName))
		return
	}

	for i, item := range output.Items {
		fmt.Fprintf(w, "  %3d. %s\n", i+1, item)
	}
}

// PrintTable はヘッダーと行を列幅を揃えて出力する
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}

	printRow := func(cells []string) {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				padded[i] = cell
				continue
			}
			padded[i] = PadRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	printRow(headers)
	separators := make([]string, len(headers))
	for i, width := range widths {
		separators[i] = strings.Repeat("-", width)
	}
	printRow(separators)
	for _, row := range rows {
		printRow(row)
	}
}

// PrintResultSummary は処理結果の件数サマリーを表示
func PrintResultSummary(resourceName string, results []ProcessResult) {
	successCount, failCount := CollectResults(results)
	if failCount == 0 {
		fmt.Printf("%s %d件の%sをすべて処理しました\n", PartyIcon, successCount, resourceName)
		return
	}
	fmt.Printf("%s %s処理結果: 成功 %d件 / 失敗 %d件\n", WarningIcon, resourceName, successCount, failCount)
	for _, r := range results {
		if !r.Success {
			fmt.Printf("   - %s: %v\n", r.Item, r.Error)
		}
	}
}

// FormatEmptyMessage は該当リソースがない場合のメッセージを返す
func FormatEmptyMessage(resourceType string) string {
	return fmt.Sprintf("%sが見つかりませんでした", resourceType)
}
