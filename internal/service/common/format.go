package common

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// FormatBytes はバイト数を人間が読みやすい形式に変換する関数
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// PadRight は表示幅（全角文字は2）を考慮して右側を空白で埋める
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
