package kvstore

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ggorockee/happyhours/internal/config"
)

// fakeDynamo keeps items in a map keyed by the "key" attribute.
type fakeDynamo struct {
	items    map[string]map[string]dynamodbtypes.AttributeValue
	pageSize int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]dynamodbtypes.AttributeValue), pageSize: 2}
}

func attrString(m map[string]dynamodbtypes.AttributeValue, name string) string {
	if v, ok := m[name].(*dynamodbtypes.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[attrString(in.Key, "key")]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items[attrString(in.Item, "key")] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, attrString(in.Key, "key"))
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		last := attrString(in.ExclusiveStartKey, "key")
		for i, k := range keys {
			if k == last {
				start = i + 1
			}
		}
	}

	out := &dynamodb.ScanOutput{}
	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, map[string]dynamodbtypes.AttributeValue{
			"key": &dynamodbtypes.AttributeValueMemberS{Value: k},
		})
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]dynamodbtypes.AttributeValue{
			"key": &dynamodbtypes.AttributeValueMemberS{Value: keys[end-1]},
		}
	}
	return out, nil
}

// exerciseStore runs the same contract against any backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok:%v err:%v, want absent", ok, err)
	}

	for _, k := range []string{"a", "b", "c", "d", "e"} {
		if err := s.Set(ctx, k, "value-"+k); err != nil {
			t.Fatalf("Set(%s) error = %v", k, err)
		}
	}

	if v, ok, err := s.Get(ctx, "c"); err != nil || !ok || v != "value-c" {
		t.Fatalf("Get(c) = %q ok:%v err:%v", v, ok, err)
	}

	if err := s.Set(ctx, "c", "overwritten"); err != nil {
		t.Fatalf("Set overwrite error = %v", err)
	}
	if v, _, _ := s.Get(ctx, "c"); v != "overwritten" {
		t.Errorf("Expected overwritten value, got %q", v)
	}

	if err := s.Remove(ctx, "a"); err != nil {
		t.Fatalf("Remove error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("Expected a to be removed")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear error = %v", err)
	}
	for _, k := range []string{"b", "c", "d", "e"} {
		if _, ok, _ := s.Get(ctx, k); ok {
			t.Errorf("Expected %s to be cleared", k)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestDynamoDBStore(t *testing.T) {
	fake := newFakeDynamo()
	exerciseStore(t, NewDynamoDB(fake, "kv"))

	if len(fake.items) != 0 {
		t.Errorf("Expected empty table after Clear, got %d items", len(fake.items))
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "redis"}}

	_, err := Open(context.Background(), cfg)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("Expected ErrUnknownBackend, got %v", err)
	}
}

func TestOpenMemory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "memory"}}

	s, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("Expected *Memory, got %T", s)
	}
	Close(s)
}

func TestPostgresRejectsBadTableName(t *testing.T) {
	_, err := NewPostgres(context.Background(), "postgres://localhost/db", "kv; DROP TABLE x")
	if err == nil {
		t.Fatal("Expected error for invalid table name")
	}
}
