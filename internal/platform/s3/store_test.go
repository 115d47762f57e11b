package s3

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PowerPress/npk/internal/preflight"
)

type fakeAPI struct {
	createErr error
	objects   map[string][]byte
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: map[string][]byte{}}
}

func (f *fakeAPI) CreateBucket(_ context.Context, _ *awss3.CreateBucketInput, _ ...func(*awss3.Options)) (*awss3.CreateBucketOutput, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &awss3.CreateBucketOutput{}, nil
}

func (f *fakeAPI) PutObject(_ context.Context, params *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = data
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, params *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, _ *awss3.ListObjectsV2Input, _ ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	out := &awss3.ListObjectsV2Output{}
	for key := range f.objects {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	return out, nil
}

func TestEnsureBucket_AlreadyOwnedIsNotAnError(t *testing.T) {
	api := newFakeAPI()
	api.createErr = &types.BucketAlreadyOwnedByYou{}
	store := NewStore(api, "npk-snapshots")

	assert.NoError(t, store.EnsureBucket(context.Background()))
}

func TestPutGetSnapshot_RoundTrip(t *testing.T) {
	api := newFakeAPI()
	store := NewStore(api, "npk-snapshots")
	store.now = func() time.Time { return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) }

	snapshot := &preflight.Snapshot{
		ProviderRegions: []string{"us-east-1"},
		Quotas:          map[string]map[string]float64{"us-east-1": {"L-3819A6DF": 8}},
		MaxQuota:        8,
		Regions:         map[string][]string{"us-east-1": {"us-east-1a"}},
		SpotRoleExists:  true,
	}

	key, err := store.PutSnapshot(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, "preflight/20260828T120000Z.json", key)

	got, err := store.GetSnapshot(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)

	keys, err := store.ListSnapshots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{key}, keys)
}

func TestGetSnapshot_Missing(t *testing.T) {
	store := NewStore(newFakeAPI(), "npk-snapshots")

	_, err := store.GetSnapshot(context.Background(), "preflight/nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get snapshot")
}
