package cloudfront

// DistributionInfo はCloudFrontディストリビューションの情報を保持する構造体
type DistributionInfo struct {
	Id         string
	DomainName string
	Comment    string
}

// DistributionConfigDocument は取得したディストリビューション設定とETagの組
// Config はAPIが返したJSONをそのまま保持し、未知のフィールドも書き戻す
type DistributionConfigDocument struct {
	ETag   string
	Config map[string]interface{}
}

// RewriteRule はオリジン書き換えの条件と書き換え後の値
type RewriteRule struct {
	Match                string // DomainName の部分一致（* を含む場合はglob）
	DomainName           string // 書き換え後の DomainName
	OriginAccessIdentity string // origin-access-identity/cloudfront/<id>
}

// OriginChange は書き換えたオリジン1件分の記録
type OriginChange struct {
	Id            string
	OldDomainName string
	NewDomainName string
	ClearedOAC    bool
}

// OriginSummary はオリジン一覧表示用の情報
type OriginSummary struct {
	Id                    string
	DomainName            string
	OriginAccessIdentity  string
	OriginAccessControlId string
	Matched               bool
}

// RecoverOptions はオリジン復旧処理のオプション
type RecoverOptions struct {
	DistributionId string // 必須
	BucketName     string // 必須: オリジンの向き先バケット
	BucketRegion   string // 必須: バケットのリージョン
	OriginMatch    string // 必須: 書き換え対象オリジンのDomainNameパターン
	Comment        string // オプション: OAIのコメント（未指定時は Recovery-OAI-for-<bucket>）
	ConfigPath     string // オプション: 設定の受け渡しファイル（デフォルト: dist-config.json）
	PolicyPath     string // オプション: バケットポリシーの受け渡しファイル（デフォルト: bucket-policy.json）
}

// RecoverResult はオリジン復旧処理の結果
type RecoverResult struct {
	OriginAccessIdentityId string
	ETag                   string
	Changes                []OriginChange
	Policy                 BucketPolicy
}
