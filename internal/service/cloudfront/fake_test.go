package cloudfront

import (
	"context"
	"fmt"

	"ufops/internal/cli"

	"github.com/tidwall/gjson"
)

const distributionConfigJSON = `{
  "ETag": "E3ETAGVALUE",
  "DistributionConfig": {
    "CallerReference": "cdk-0001",
    "Comment": "uniforge assets",
    "Enabled": true,
    "Origins": {
      "Quantity": 3,
      "Items": [
        {
          "Id": "S3-legacy-assets",
          "DomainName": "assets-legacy.s3.ap-northeast-2.amazonaws.com",
          "OriginPath": "",
          "S3OriginConfig": {"OriginAccessIdentity": ""},
          "OriginAccessControlId": "E1OACOLD"
        },
        {
          "Id": "api",
          "DomainName": "api.uniforge.example.com",
          "CustomOriginConfig": {"HTTPPort": 80, "HTTPSPort": 443, "OriginProtocolPolicy": "https-only"}
        },
        {
          "Id": "S3-previews",
          "DomainName": "previews.s3.ap-northeast-2.amazonaws.com"
        }
      ]
    },
    "DefaultCacheBehavior": {"TargetOriginId": "S3-legacy-assets", "DefaultTTL": 86400, "MaxTTL": 31536000}
  }
}`

const noS3OriginConfigJSON = `{
  "ETag": "E3ETAGVALUE",
  "DistributionConfig": {
    "Origins": {
      "Quantity": 1,
      "Items": [
        {"Id": "api", "DomainName": "api.uniforge.example.com"}
      ]
    }
  }
}`

// fakeRunner は aws コマンドの代わりに固定のJSONを返す
type fakeRunner struct {
	configJSON string
	failOn     map[string]error
	calls      [][]string
	oaiCount   int
}

func newFakeRunner(configJSON string) *fakeRunner {
	return &fakeRunner{configJSON: configJSON, failOn: map[string]error{}}
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (cli.Result, error) {
	f.calls = append(f.calls, args)
	op := args[1]
	if err, ok := f.failOn[op]; ok {
		return cli.Result{Stderr: err.Error()}, &cli.CommandError{Args: append([]string{"aws"}, args...), ExitCode: 255, Stderr: err.Error(), Err: err}
	}

	switch op {
	case "create-cloud-front-origin-access-identity":
		f.oaiCount++
		return cli.Result{Stdout: fmt.Sprintf(`{"Location":"https://cloudfront.amazonaws.com/2020-05-31/origin-access-identity/cloudfront/EOAI%d","ETag":"E1","CloudFrontOriginAccessIdentity":{"Id":"EOAI%d","S3CanonicalUserId":"abc"}}`, f.oaiCount, f.oaiCount)}, nil
	case "get-distribution-config":
		return cli.Result{Stdout: f.configJSON}, nil
	}
	return cli.Result{}, nil
}

func (f *fakeRunner) called(op string) [][]string {
	var matched [][]string
	for _, c := range f.calls {
		if len(c) > 1 && c[1] == op {
			matched = append(matched, c)
		}
	}
	return matched
}

func flagValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func oaiConfigField(args []string, field string) string {
	return gjson.Get(flagValue(args, "--cloud-front-origin-access-identity-config"), field).String()
}

func callerReferenceOf(args []string) string {
	return oaiConfigField(args, "CallerReference")
}
