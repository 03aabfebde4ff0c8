package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/models"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/store"
	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/testutil"
)

func TestListAll_PagesPastMaxPageSize(t *testing.T) {
	st := testutil.NewStore()
	ctx := context.Background()
	total := 2*store.MaxPageSize + 3
	for i := 0; i < total; i++ {
		require.NoError(t, st.Dedicated.Create(ctx, &models.Dedicated{Name: fmt.Sprintf("srv-%d", i)}))
	}

	rows, err := store.ListAll(ctx, st.Dedicated, nil)
	require.NoError(t, err)
	require.Len(t, rows, total)
	assert.Equal(t, "srv-0", rows[0].Name)
	assert.Equal(t, fmt.Sprintf("srv-%d", total-1), rows[total-1].Name)
}

func TestListAll_EmptyAndError(t *testing.T) {
	st := testutil.NewStore()
	ctx := context.Background()

	rows, err := store.ListAll(ctx, st.VPS, nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	boom := errors.New("db down")
	st.VPS.(*testutil.MemCRUD[models.VPS]).Err = boom
	_, err = store.ListAll(ctx, st.VPS, nil)
	assert.ErrorIs(t, err, boom)
}
