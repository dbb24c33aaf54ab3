package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/vecdb/blobstore"
)

// ErrConcurrentCommit is returned when another writer committed a snapshot
// with the same version first.
var ErrConcurrentCommit = errors.New("concurrent snapshot commit detected")

// DDBClient is the interface for the DynamoDB operations the commit
// store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore layers versioned snapshot commits on top of a payload store.
//
// Object storage alone cannot compare-and-swap, so two writers saving under
// the same name can silently clobber each other. CommitStore writes each
// snapshot under a version-numbered name and records the version in DynamoDB
// with a conditional write. The conditional write is the atomic step: the
// loser of a race gets ErrConcurrentCommit instead of overwriting.
//
// Table schema:
//   - Partition key: base_uri (string) - logical database location
//   - Sort key: version (number) - monotonically increasing version
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name vecdb-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	payloads blobstore.BlobStore
	ddb      DDBClient
	table    string
	baseURI  string
}

// NewCommitStore creates a commit store. Snapshot payloads go to payloads
// (typically an S3 Store); version records go to the DynamoDB table.
// baseURI identifies the database (e.g. "s3://bucket/prefix") and is used
// as the partition key.
func NewCommitStore(payloads blobstore.BlobStore, ddb DDBClient, table, baseURI string) *CommitStore {
	return &CommitStore{
		payloads: payloads,
		ddb:      ddb,
		table:    table,
		baseURI:  baseURI,
	}
}

func snapshotName(version uint64) string {
	return fmt.Sprintf("snapshot-%08d.vdb", version)
}

// Commit writes data as the next snapshot version and publishes it
// atomically. It returns the committed version.
func (c *CommitStore) Commit(ctx context.Context, data []byte) (uint64, error) {
	current, _, err := c.latest(ctx)
	if err != nil {
		return 0, err
	}

	next := current + 1
	name := snapshotName(next)

	if err := c.payloads.Put(ctx, name, data); err != nil {
		return 0, fmt.Errorf("write snapshot payload: %w", err)
	}

	if err := c.publish(ctx, next, name); err != nil {
		// The unpublished payload is unreachable; clean it up best effort.
		_ = c.payloads.Delete(ctx, name)
		return 0, err
	}

	return next, nil
}

// Latest returns the newest committed version and its blob name.
// It returns blobstore.ErrNotFound when nothing has been committed yet.
func (c *CommitStore) Latest(ctx context.Context) (uint64, string, error) {
	version, name, err := c.latest(ctx)
	if err != nil {
		return 0, "", err
	}
	if version == 0 {
		return 0, "", blobstore.ErrNotFound
	}
	return version, name, nil
}

// OpenLatest opens the newest committed snapshot for reading.
func (c *CommitStore) OpenLatest(ctx context.Context) (blobstore.Blob, error) {
	_, name, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return c.payloads.Open(ctx, name)
}

// Open opens a blob from the payload store.
func (c *CommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	return c.payloads.Open(ctx, name)
}

// Create creates a writable blob in the payload store. The blob is not
// registered as a committed version; use Commit for that.
func (c *CommitStore) Create(ctx context.Context, name string) (blobstore.WritableBlob, error) {
	return c.payloads.Create(ctx, name)
}

// Put writes a blob to the payload store without committing a version.
func (c *CommitStore) Put(ctx context.Context, name string, data []byte) error {
	return c.payloads.Put(ctx, name, data)
}

// Delete removes a blob from the payload store.
func (c *CommitStore) Delete(ctx context.Context, name string) error {
	return c.payloads.Delete(ctx, name)
}

// List lists blobs in the payload store.
func (c *CommitStore) List(ctx context.Context, prefix string) ([]string, error) {
	return c.payloads.List(ctx, prefix)
}

// latest queries DynamoDB for the newest committed version.
// It returns version 0 when no commit exists.
func (c *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := c.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uri": &types.AttributeValueMemberS{Value: c.baseURI},
		},
		ScanIndexForward: aws.Bool(false), // Descending, newest first
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("query commit table: %w", err)
	}

	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("commit record has invalid version attribute")
	}
	nameAttr, ok := item["snapshot_name"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("commit record has invalid snapshot_name attribute")
	}

	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse commit version: %w", err)
	}

	return version, nameAttr.Value, nil
}

// publish records the version with a conditional write. Only one writer
// can claim a given version number.
func (c *CommitStore) publish(ctx context.Context, version uint64, name string) error {
	_, err := c.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item: map[string]types.AttributeValue{
			"base_uri":      &types.AttributeValueMemberS{Value: c.baseURI},
			"version":       &types.AttributeValueMemberN{Value: strconv.FormatUint(version, 10)},
			"snapshot_name": &types.AttributeValueMemberS{Value: name},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentCommit
		}
		return fmt.Errorf("publish commit version: %w", err)
	}

	return nil
}
