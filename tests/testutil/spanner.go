package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/models/m_cart"
)

const defaultTestDatabase = "projects/test-project/instances/test-instance/databases/storefront-test"

// TestDatabase returns SPANNER_DATABASE or the emulator default.
func TestDatabase() string {
	if db := os.Getenv("SPANNER_DATABASE"); db != "" {
		return db
	}
	return defaultTestDatabase
}

// SetupSpannerTest connects to the test database with an empty cart_records
// table. The test is skipped when neither an emulator nor a database is
// configured. The returned function empties the table and closes the client.
func SetupSpannerTest(t *testing.T) (*spanner.Client, func()) {
	t.Helper()

	if os.Getenv("SPANNER_EMULATOR_HOST") == "" && os.Getenv("SPANNER_DATABASE") == "" {
		t.Skip("SPANNER_EMULATOR_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := spanner.NewClient(ctx, TestDatabase())
	require.NoError(t, err, "failed to create Spanner client")

	ClearCartRecords(t, client)

	return client, func() {
		ClearCartRecords(t, client)
		client.Close()
	}
}

// ClearCartRecords deletes every cart record. schema_migrations is left alone.
func ClearCartRecords(t *testing.T, client *spanner.Client) {
	t.Helper()

	_, err := client.Apply(context.Background(), []*spanner.Mutation{
		spanner.Delete(m_cart.TableName, spanner.AllKeys()),
	})
	require.NoError(t, err, "failed to clear %s", m_cart.TableName)
}

// CountCartRecords counts records, optionally for one shop.
func CountCartRecords(t *testing.T, client *spanner.Client, shopDomain string) int64 {
	t.Helper()

	stmt := spanner.Statement{SQL: "SELECT COUNT(*) FROM " + m_cart.TableName}
	if shopDomain != "" {
		stmt.SQL += " WHERE " + m_cart.ShopDomain + " = @shop"
		stmt.Params = map[string]interface{}{"shop": shopDomain}
	}

	var count int64
	err := client.Single().Query(context.Background(), stmt).Do(func(row *spanner.Row) error {
		return row.Columns(&count)
	})
	require.NoError(t, err, "failed to count cart records")
	return count
}

// AssertCartRecordCount fails the test unless exactly want records exist.
func AssertCartRecordCount(t *testing.T, client *spanner.Client, want int) {
	t.Helper()
	require.Equal(t, int64(want), CountCartRecords(t, client, ""), "unexpected number of cart records")
}
