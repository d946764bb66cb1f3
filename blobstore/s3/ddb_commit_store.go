package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/netslab/blobstore"
)

// ErrConcurrentModification is returned by Put(CURRENT) when another writer
// committed the same version first.
var ErrConcurrentModification = errors.New("s3: concurrent modification of CURRENT")

// DDBClient is the subset of *dynamodb.Client the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DDBCommitStore is a Store whose CURRENT pointer lives in DynamoDB.
//
// Every commit appends an item with the next version number under a
// conditional write, so of two writers racing on the same version exactly one
// wins. All other blobs go to S3.
//
// Table schema:
//   - partition key base_uri (S): identifies the store, e.g. s3://bucket/prefix
//   - sort key version (N): commit number, starting at 1
//
//	aws dynamodb create-table \
//	  --table-name netslab-commits \
//	  --attribute-definitions AttributeName=base_uri,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=base_uri,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DDBCommitStore struct {
	*Store
	ddb     DDBClient
	table   string
	baseURI string
}

var _ blobstore.Store = (*DDBCommitStore)(nil)

// NewDDBCommitStore wraps store. baseURI partitions the table between stores.
func NewDDBCommitStore(store *Store, ddb DDBClient, table, baseURI string) *DDBCommitStore {
	return &DDBCommitStore{
		Store:   store,
		ddb:     ddb,
		table:   table,
		baseURI: baseURI,
	}
}

// NewCommitStore creates an S3 store and its DynamoDB commit table client
// from the default AWS credential chain.
func NewCommitStore(ctx context.Context, bucket, table string, optFns ...Option) (*DDBCommitStore, error) {
	o := buildOptions(optFns)

	var loadOpts []func(*config.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	store := NewStore(s3.NewFromConfig(cfg), bucket, optFns...)
	baseURI := "s3://" + bucket
	if store.prefix != "" {
		baseURI += "/" + store.prefix
	}
	return NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg), table, baseURI), nil
}

// Open implements blobstore.Store. CURRENT is served from DynamoDB.
func (s *DDBCommitStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	if name != blobstore.CurrentName {
		return s.Store.Open(ctx, name)
	}
	version, target, err := s.latest(ctx)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		return nil, fmt.Errorf("s3: %s: %w", blobstore.CurrentName, blobstore.ErrNotFound)
	}
	return blobstore.NewBytesBlob([]byte(target)), nil
}

// Put implements blobstore.Store. Writing CURRENT commits a new version and
// fails with ErrConcurrentModification when it loses a race.
func (s *DDBCommitStore) Put(ctx context.Context, name string, data []byte) error {
	if name != blobstore.CurrentName {
		return s.Store.Put(ctx, name, data)
	}
	return s.commit(ctx, string(data))
}

// Version returns the number of the latest commit, 0 if none.
func (s *DDBCommitStore) Version(ctx context.Context) (uint64, error) {
	v, _, err := s.latest(ctx)
	return v, err
}

func (s *DDBCommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("base_uri = :uri"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":uri": &ddbtypes.AttributeValueMemberS{Value: s.baseURI},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", fmt.Errorf("s3: query commit table: %w", err)
	}
	if len(resp.Items) == 0 {
		return 0, "", nil
	}

	item := resp.Items[0]
	versionAttr, ok := item["version"].(*ddbtypes.AttributeValueMemberN)
	if !ok {
		return 0, "", errors.New("s3: commit item without numeric version")
	}
	targetAttr, ok := item["snapshot"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return 0, "", errors.New("s3: commit item without snapshot name")
	}
	version, err := strconv.ParseUint(versionAttr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("s3: parse commit version: %w", err)
	}
	return version, targetAttr.Value, nil
}

func (s *DDBCommitStore) commit(ctx context.Context, target string) error {
	current, _, err := s.latest(ctx)
	if err != nil {
		return err
	}

	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]ddbtypes.AttributeValue{
			"base_uri": &ddbtypes.AttributeValueMemberS{Value: s.baseURI},
			"version":  &ddbtypes.AttributeValueMemberN{Value: strconv.FormatUint(current+1, 10)},
			"snapshot": &ddbtypes.AttributeValueMemberS{Value: target},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *ddbtypes.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrConcurrentModification
		}
		return fmt.Errorf("s3: commit %s: %w", target, err)
	}
	return nil
}
