package source

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	body  string
	err   error
	input *s3.GetObjectInput
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func responseErr(code int) error {
	return &smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
		Err:      errors.New("api error"),
	}
}

func TestS3Fetch(t *testing.T) {
	fake := &fakeS3{body: `{"record":` + doc + `}`}
	src := &S3{Client: fake, Bucket: "graphs", Key: "demo.json", Envelope: DefaultEnvelope}

	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Nodes, 2)
	assert.Equal(t, "graphs", aws.ToString(fake.input.Bucket))
	assert.Equal(t, "demo.json", aws.ToString(fake.input.Key))
}

func TestS3Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status string
	}{
		{"no such key", &types.NoSuchKey{Message: aws.String("missing")}, "not_found"},
		{"no such bucket", &types.NoSuchBucket{}, "not_found"},
		{"http 404", responseErr(404), "not_found"},
		{"http 500", responseErr(500), "server_error"},
		{"http 503", responseErr(503), "status"},
		{"http 403", responseErr(403), "error"},
		{"other", errors.New("dial tcp: refused"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &S3{Client: &fakeS3{err: tt.err}, Bucket: "b", Key: "k"}
			_, err := src.Fetch(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.status, Status(err))
			assert.Contains(t, err.Error(), "s3://b/k")
		})
	}
}
