package get_product

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-core/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-core/internal/app/catalog/domain/services"
	"github.com/light-bringer/storefront-core/tests/testutil"
)

func TestQuery_Execute(t *testing.T) {
	tint := testutil.NewTestProduct("p1", "lip-tint",
		testutil.NewTestVariant("v1", "S / Red", "12.00"),
		testutil.NewTestVariant("v2", "M / Red", "14.00"),
		testutil.NewTestVariant("v3", "M / Blue", "14.00"),
	)
	q := NewQuery(testutil.NewFakeGateway(tint))

	t.Run("defaults to the first variant", func(t *testing.T) {
		view, err := q.Execute(context.Background(), &Request{Handle: "lip-tint"})
		require.NoError(t, err)

		assert.Equal(t, services.Selection{services.AxisSize: "S", services.AxisColor: "Red"}, view.Selection)
		v, ok := view.Selected()
		require.True(t, ok)
		assert.Equal(t, "v1", v.ID)
	})

	t.Run("choose moves to the matching variant", func(t *testing.T) {
		view, err := q.Execute(context.Background(), &Request{Handle: "lip-tint"})
		require.NoError(t, err)

		require.NoError(t, view.Choose(services.AxisSize, "M"))
		require.NoError(t, view.Choose(services.AxisColor, "Blue"))
		v, ok := view.Selected()
		require.True(t, ok)
		assert.Equal(t, "v3", v.ID)
	})

	t.Run("missing combination has no variant", func(t *testing.T) {
		view, err := q.Execute(context.Background(), &Request{Handle: "lip-tint"})
		require.NoError(t, err)

		require.NoError(t, view.Choose(services.AxisColor, "Blue"))
		_, ok := view.Selected()
		assert.False(t, ok, "S / Blue does not exist")
	})

	t.Run("unknown value is rejected", func(t *testing.T) {
		view, err := q.Execute(context.Background(), &Request{Handle: "lip-tint"})
		require.NoError(t, err)

		assert.Error(t, view.Choose(services.AxisColor, "Green"))
		assert.Equal(t, "Red", view.Selection[services.AxisColor])
	})

	t.Run("not found", func(t *testing.T) {
		_, err := q.Execute(context.Background(), &Request{Handle: "nope"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
