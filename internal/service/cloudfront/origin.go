package cloudfront

import (
	"errors"
	"fmt"

	"ufops/internal/service/common"
)

// ErrNoMatchingOrigin は書き換え対象のオリジンが見つからなかったことを表す
var ErrNoMatchingOrigin = errors.New("更新対象のS3オリジンが見つかりませんでした")

// BucketDomainName はバケットの仮想ホスト形式ドメイン名を返す
func BucketDomainName(bucket, region string) string {
	return fmt.Sprintf("%s.s3.%s.amazonaws.com", bucket, region)
}

// OriginAccessIdentityPath はオリジン設定に書き込むOAI参照文字列を返す
func OriginAccessIdentityPath(oaiId string) string {
	return "origin-access-identity/cloudfront/" + oaiId
}

// originItems は設定ドキュメントから Origins.Items を取り出す
func originItems(cfg map[string]interface{}) []map[string]interface{} {
	origins, ok := cfg["Origins"].(map[string]interface{})
	if !ok {
		return nil
	}
	items, ok := origins["Items"].([]interface{})
	if !ok {
		return nil
	}

	var result []map[string]interface{}
	for _, item := range items {
		if origin, ok := item.(map[string]interface{}); ok {
			result = append(result, origin)
		}
	}
	return result
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

// RewriteOrigins は DomainName が rule.Match に一致するすべてのオリジンを書き換える
// 一致するオリジンがない場合は ErrNoMatchingOrigin を返し、cfg は変更しない
func RewriteOrigins(cfg map[string]interface{}, rule RewriteRule) ([]OriginChange, error) {
	var changes []OriginChange

	for _, origin := range originItems(cfg) {
		id := stringField(origin, "Id")
		domainName := stringField(origin, "DomainName")
		fmt.Printf("   オリジン確認: %s - %s\n", id, domainName)

		if !common.MatchPattern(domainName, rule.Match) {
			continue
		}
		fmt.Printf("%s 更新対象のS3オリジンを検出: %s\n", common.SearchIcon, id)

		change := OriginChange{
			Id:            id,
			OldDomainName: domainName,
			NewDomainName: rule.DomainName,
		}
		origin["DomainName"] = rule.DomainName

		// S3OriginConfig がない（または null）の場合は作成する
		s3OriginConfig, ok := origin["S3OriginConfig"].(map[string]interface{})
		if !ok {
			s3OriginConfig = map[string]interface{}{}
			origin["S3OriginConfig"] = s3OriginConfig
		}
		s3OriginConfig["OriginAccessIdentity"] = rule.OriginAccessIdentity

		// OACとOAIの同時指定はAPIに拒否されるため、キーがあれば空にする
		// SDK構造体から変換した設定では未設定のフィールドが null になるので、null はキーなしと同じ扱い
		if v, exists := origin["OriginAccessControlId"]; exists && v != nil {
			origin["OriginAccessControlId"] = ""
			change.ClearedOAC = true
		}

		changes = append(changes, change)
	}

	if len(changes) == 0 {
		return nil, ErrNoMatchingOrigin
	}
	return changes, nil
}

// SummarizeOrigins はオリジン一覧を表示用に要約する
func SummarizeOrigins(cfg map[string]interface{}, match string) []OriginSummary {
	var summaries []OriginSummary
	for _, origin := range originItems(cfg) {
		summary := OriginSummary{
			Id:                    stringField(origin, "Id"),
			DomainName:            stringField(origin, "DomainName"),
			OriginAccessControlId: stringField(origin, "OriginAccessControlId"),
		}
		if s3OriginConfig, ok := origin["S3OriginConfig"].(map[string]interface{}); ok {
			summary.OriginAccessIdentity = stringField(s3OriginConfig, "OriginAccessIdentity")
		}
		summary.Matched = match != "" && common.MatchPattern(summary.DomainName, match)
		summaries = append(summaries, summary)
	}
	return summaries
}
