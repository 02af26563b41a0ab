package cloudfront

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ufops/internal/cli"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recoverOptions(t *testing.T) RecoverOptions {
	dir := t.TempDir()
	return RecoverOptions{
		DistributionId: "E2C82OGQQLZ3BB",
		BucketName:     "uniforge-assets",
		BucketRegion:   "ap-northeast-2",
		OriginMatch:    "s3.ap-northeast-2.amazonaws.com",
		ConfigPath:     filepath.Join(dir, "dist-config.json"),
		PolicyPath:     filepath.Join(dir, "bucket-policy.json"),
	}
}

func readJSON(t *testing.T, path string) map[string]interface{} {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestRecover_Success(t *testing.T) {
	runner := newFakeRunner(distributionConfigJSON)
	opts := recoverOptions(t)

	result, err := Recover(context.Background(), NewCliAPI(runner), opts)
	require.NoError(t, err)

	assert.Equal(t, "EOAI1", result.OriginAccessIdentityId)
	assert.Equal(t, "E3ETAGVALUE", result.ETag)
	require.Len(t, result.Changes, 2)
	assert.Equal(t, "S3-legacy-assets", result.Changes[0].Id)
	assert.True(t, result.Changes[0].ClearedOAC)
	assert.Equal(t, "S3-previews", result.Changes[1].Id)

	// コマンドの順序
	var ops []string
	for _, c := range runner.calls {
		ops = append(ops, c[0]+" "+c[1])
	}
	assert.Equal(t, []string{
		"cloudfront create-cloud-front-origin-access-identity",
		"cloudfront get-distribution-config",
		"cloudfront update-distribution",
		"s3api put-bucket-policy",
	}, ops)

	create := runner.called("create-cloud-front-origin-access-identity")[0]
	assert.Equal(t, "Recovery-OAI-for-uniforge-assets", oaiConfigField(create, "Comment"))

	update := runner.called("update-distribution")[0]
	assert.Equal(t, "E2C82OGQQLZ3BB", flagValue(update, "--id"))
	assert.Equal(t, "E3ETAGVALUE", flagValue(update, "--if-match"))
	assert.Equal(t, "file://"+opts.ConfigPath, flagValue(update, "--distribution-config"))

	policyCall := runner.called("put-bucket-policy")[0]
	assert.Equal(t, "uniforge-assets", flagValue(policyCall, "--bucket"))
	assert.Equal(t, "file://"+opts.PolicyPath, flagValue(policyCall, "--policy"))
	assert.Equal(t, "ap-northeast-2", flagValue(policyCall, "--region"))

	// dist-config.json は DistributionConfig のみで、未知のフィールドと数値を保持する
	written := readJSON(t, opts.ConfigPath)
	assert.NotContains(t, written, "ETag")
	assert.Equal(t, "uniforge assets", written["Comment"])
	behavior := written["DefaultCacheBehavior"].(map[string]interface{})
	assert.Equal(t, float64(31536000), behavior["MaxTTL"])
	items := written["Origins"].(map[string]interface{})["Items"].([]interface{})
	legacy := items[0].(map[string]interface{})
	assert.Equal(t, "uniforge-assets.s3.ap-northeast-2.amazonaws.com", legacy["DomainName"])
	assert.Equal(t, "", legacy["OriginAccessControlId"])
	assert.Equal(t, "origin-access-identity/cloudfront/EOAI1", legacy["S3OriginConfig"].(map[string]interface{})["OriginAccessIdentity"])
	api := items[1].(map[string]interface{})
	assert.Equal(t, "api.uniforge.example.com", api["DomainName"])

	// bucket-policy.json のプリンシパルは作成したOAIのIDを含む
	policy := readJSON(t, opts.PolicyPath)
	statement := policy["Statement"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "arn:aws:iam::cloudfront:user/CloudFront Origin Access Identity EOAI1", statement["Principal"].(map[string]interface{})["AWS"])
	assert.Equal(t, "arn:aws:s3:::uniforge-assets/*", statement["Resource"])
	assert.Equal(t, "s3:GetObject", statement["Action"])
}

func TestRecover_NoMatchingOrigin(t *testing.T) {
	runner := newFakeRunner(noS3OriginConfigJSON)
	opts := recoverOptions(t)

	result, err := Recover(context.Background(), NewCliAPI(runner), opts)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrNoMatchingOrigin)

	// OAIは作成済み（削除しない）だが、更新系のコマンドは呼ばれない
	assert.Len(t, runner.called("create-cloud-front-origin-access-identity"), 1)
	assert.Empty(t, runner.called("update-distribution"))
	assert.Empty(t, runner.called("put-bucket-policy"))
	assert.NoFileExists(t, opts.ConfigPath)
	assert.NoFileExists(t, opts.PolicyPath)
}

func TestRecover_UpdateFailureStopsBeforePolicy(t *testing.T) {
	runner := newFakeRunner(distributionConfigJSON)
	runner.failOn["update-distribution"] = errors.New("An error occurred (PreconditionFailed)")
	opts := recoverOptions(t)

	_, err := Recover(context.Background(), NewCliAPI(runner), opts)
	require.Error(t, err)

	var cmdErr *cli.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Contains(t, err.Error(), "PreconditionFailed")
	assert.Empty(t, runner.called("put-bucket-policy"))
	assert.FileExists(t, opts.ConfigPath)
	assert.NoFileExists(t, opts.PolicyPath)
}

func TestRecover_CreateIdentityFailure(t *testing.T) {
	runner := newFakeRunner(distributionConfigJSON)
	runner.failOn["create-cloud-front-origin-access-identity"] = errors.New("AccessDenied")

	_, err := Recover(context.Background(), NewCliAPI(runner), recoverOptions(t))
	assert.ErrorContains(t, err, "AccessDenied")
	assert.Len(t, runner.calls, 1)
}

func TestRecover_RerunCreatesDistinctIdentities(t *testing.T) {
	tick := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	t.Cleanup(func() { nowFunc = time.Now })

	runner := newFakeRunner(distributionConfigJSON)
	first, err := Recover(context.Background(), NewCliAPI(runner), recoverOptions(t))
	require.NoError(t, err)
	second, err := Recover(context.Background(), NewCliAPI(runner), recoverOptions(t))
	require.NoError(t, err)

	assert.NotEqual(t, first.OriginAccessIdentityId, second.OriginAccessIdentityId)

	creates := runner.called("create-cloud-front-origin-access-identity")
	require.Len(t, creates, 2)
	assert.NotEqual(t, callerReferenceOf(creates[0]), callerReferenceOf(creates[1]))
	assert.Contains(t, callerReferenceOf(creates[0]), "recovery-E2C82OGQQLZ3BB-")
}

func TestRecover_RequiresOptions(t *testing.T) {
	runner := newFakeRunner(distributionConfigJSON)
	_, err := Recover(context.Background(), NewCliAPI(runner), RecoverOptions{DistributionId: "E1"})
	assert.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestNewBucketPolicy(t *testing.T) {
	policy := NewBucketPolicy("uniforge-assets", "E2OAIID")

	data, err := json.Marshal(policy)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"Version": "2012-10-17",
		"Statement": [{
			"Sid": "AllowCloudFrontOAI",
			"Effect": "Allow",
			"Principal": {"AWS": "arn:aws:iam::cloudfront:user/CloudFront Origin Access Identity E2OAIID"},
			"Action": "s3:GetObject",
			"Resource": "arn:aws:s3:::uniforge-assets/*"
		}]
	}`, string(data))
}

func TestCliAPI_GetDistributionConfig_InvalidOutput(t *testing.T) {
	runner := newFakeRunner("not json")
	_, err := NewCliAPI(runner).GetDistributionConfig(context.Background(), "E1")
	assert.Error(t, err)

	runner = newFakeRunner(`{"ETag":"E1"}`)
	_, err = NewCliAPI(runner).GetDistributionConfig(context.Background(), "E1")
	assert.Error(t, err)
}

func TestRecover_CommentWithComma(t *testing.T) {
	runner := newFakeRunner(distributionConfigJSON)
	opts := recoverOptions(t)
	opts.Comment = "Recovery, uniforge-assets"

	_, err := Recover(context.Background(), NewCliAPI(runner), opts)
	require.NoError(t, err)

	create := runner.called("create-cloud-front-origin-access-identity")[0]
	assert.Equal(t, "Recovery, uniforge-assets", oaiConfigField(create, "Comment"))
	assert.Contains(t, callerReferenceOf(create), "recovery-E2C82OGQQLZ3BB-")
}

func TestRecover_PolicyUsesBucketRegion(t *testing.T) {
	runner := newFakeRunner(distributionConfigJSON)
	opts := recoverOptions(t)
	opts.BucketRegion = "us-east-1"

	_, err := Recover(context.Background(), NewCliAPI(runner), opts)
	require.NoError(t, err)

	policyCall := runner.called("put-bucket-policy")[0]
	assert.Equal(t, "us-east-1", flagValue(policyCall, "--region"))
	// CloudFront の呼び出しは共通のリージョン設定のまま
	assert.Empty(t, flagValue(runner.called("update-distribution")[0], "--region"))
}
