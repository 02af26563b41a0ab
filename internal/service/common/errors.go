package common

import (
	"errors"

	"github.com/aws/smithy-go"
)

// エラーメッセージの絵文字定数
const (
	ErrorIcon   = "❌"
	SuccessIcon = "✅"
	WarningIcon = "⚠️"
	SearchIcon  = "🔍"
	InfoIcon    = "📋"
	ProcessIcon = "🔄"
	PartyIcon   = "🎉"
	UploadIcon  = "📤"
)

// エラーメッセージフォーマット定数
const (
	CreateErrorFormat = "%s %s の作成に失敗: %w"
	UpdateErrorFormat = "%s %s の更新に失敗: %w"
	GetErrorFormat    = "%s %s の取得に失敗: %w"
	UploadErrorFormat = "%s %s のアップロードに失敗: %v"

	CreateSuccessFormat = "%s %s を作成しました"
	UpdateSuccessFormat = "%s %s を更新しました"
	UploadSuccessFormat = "%s %s をアップロードしました"
)

// APIErrorCode はAWS APIエラーのエラーコードを取り出す
// APIエラーでない場合は false を返す
func APIErrorCode(err error) (string, bool) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode(), true
	}
	return "", false
}

// IsPreconditionFailed はETag不一致（If-Match失敗）のエラーかどうかを判定する
func IsPreconditionFailed(err error) bool {
	code, ok := APIErrorCode(err)
	return ok && code == "PreconditionFailed"
}
