package list_filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/tests/testutil"
)

func TestQuery_Execute(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.Types = []string{"eye", "lip"}
	gw.Vendors = []string{"Acme", "Beta"}

	res, err := NewQuery(gw).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"eye", "lip"}, res.Categories)
	assert.Equal(t, []string{"Acme", "Beta"}, res.Vendors)
}

func TestQuery_Execute_Error(t *testing.T) {
	gw := testutil.NewFakeGateway()
	gw.Err = domain.NewCatalogError("ListProductTypes", domain.ErrTimeout, nil)

	res, err := NewQuery(gw).Execute(context.Background())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrTimeout)
}
