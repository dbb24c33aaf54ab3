package s3

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/vecdb/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDDBClient is an in-memory DynamoDB mock honoring the conditional
// write the commit store relies on.
type mockDDBClient struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue // base_uri:version -> item

	// queryHook runs after each Query while the lock is released,
	// used to inject a competing writer between read and publish.
	queryHook func()
}

func newMockDDBClient() *mockDDBClient {
	return &mockDDBClient{
		items: make(map[string]map[string]types.AttributeValue),
	}
}

func itemKey(item map[string]types.AttributeValue) string {
	uri := item["base_uri"].(*types.AttributeValueMemberS).Value
	version := item["version"].(*types.AttributeValueMemberN).Value
	return uri + ":" + version
}

func (m *mockDDBClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := itemKey(params.Item)

	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(version)" {
		if _, exists := m.items[key]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
		}
	}

	m.items[key] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDDBClient) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()

	uri := params.ExpressionAttributeValues[":uri"].(*types.AttributeValueMemberS).Value

	var items []map[string]types.AttributeValue
	for _, item := range m.items {
		if item["base_uri"].(*types.AttributeValueMemberS).Value == uri {
			items = append(items, item)
		}
	}

	// Numeric sort, descending like ScanIndexForward=false
	sort.Slice(items, func(i, j int) bool {
		vi, _ := strconv.ParseUint(items[i]["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		vj, _ := strconv.ParseUint(items[j]["version"].(*types.AttributeValueMemberN).Value, 10, 64)
		return vi > vj
	})

	if params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}

	hook := m.queryHook
	m.queryHook = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}

	return &dynamodb.QueryOutput{Items: items}, nil
}

func TestCommitStore_CommitAndLatest(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	payloads := blobstore.NewMemoryStore()
	cs := NewCommitStore(payloads, ddb, "vecdb-commits", "s3://bucket/db1")

	// Nothing committed yet
	_, _, err := cs.Latest(ctx)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	_, err = cs.OpenLatest(ctx)
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	v1, err := cs.Commit(ctx, []byte("snapshot one"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v1)

	v2, err := cs.Commit(ctx, []byte("snapshot two"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v2)

	version, name, err := cs.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
	assert.Equal(t, "snapshot-00000002.vdb", name)

	blob, err := cs.OpenLatest(ctx)
	require.NoError(t, err)
	defer blob.Close()

	r, err := blob.ReadRange(ctx, 0, blob.Size())
	require.NoError(t, err)
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "snapshot two", string(content))

	// Older versions stay readable by name
	names, err := cs.List(ctx, "snapshot-")
	require.NoError(t, err)
	assert.Equal(t, []string{"snapshot-00000001.vdb", "snapshot-00000002.vdb"}, names)
}

func TestCommitStore_ConcurrentCommit(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()
	payloads := blobstore.NewMemoryStore()
	cs := NewCommitStore(payloads, ddb, "vecdb-commits", "s3://bucket/db1")

	// A competing writer claims version 1 between our read and publish.
	ddb.queryHook = func() {
		_, err := ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String("vecdb-commits"),
			Item: map[string]types.AttributeValue{
				"base_uri":      &types.AttributeValueMemberS{Value: "s3://bucket/db1"},
				"version":       &types.AttributeValueMemberN{Value: "1"},
				"snapshot_name": &types.AttributeValueMemberS{Value: "snapshot-00000001.vdb"},
			},
		})
		require.NoError(t, err)
	}

	_, err := cs.Commit(ctx, []byte("loser"))
	require.ErrorIs(t, err, ErrConcurrentCommit)

	// The losing payload was cleaned up
	names, err := payloads.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, names)

	// A retry sees the competitor's version and lands on 2
	v, err := cs.Commit(ctx, []byte("retry"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v)
}

func TestCommitStore_IsolatedByBaseURI(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()

	csA := NewCommitStore(blobstore.NewMemoryStore(), ddb, "vecdb-commits", "s3://bucket/a")
	csB := NewCommitStore(blobstore.NewMemoryStore(), ddb, "vecdb-commits", "s3://bucket/b")

	_, err := csA.Commit(ctx, []byte("a1"))
	require.NoError(t, err)
	_, err = csA.Commit(ctx, []byte("a2"))
	require.NoError(t, err)

	v, err := csB.Commit(ctx, []byte("b1"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)

	va, _, err := csA.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), va)
}
