package fedi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fedikit/fedigo/pkg/fedi"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	t.Run("builder round trip", func(t *testing.T) {
		t.Parallel()

		params := fedi.NewQueryParams().
			WithMaxID("100").
			WithSinceID("50").
			WithMinID("60").
			WithLimit(40).
			WithFilter("only_media", "true").
			WithFilter("exclude_types[]", "follow", "favourite")

		values := params.ToValues()
		assert.Equal(t, "100", values.Get("max_id"))
		assert.Equal(t, "50", values.Get("since_id"))
		assert.Equal(t, "60", values.Get("min_id"))
		assert.Equal(t, "40", values.Get("limit"))
		assert.Equal(t, "true", values.Get("only_media"))
		assert.Equal(t, []string{"follow", "favourite"}, values["exclude_types[]"])
	})

	t.Run("zero values are omitted", func(t *testing.T) {
		t.Parallel()

		values := fedi.NewQueryParams().ToValues()
		assert.Empty(t, values)
	})

	t.Run("nil params", func(t *testing.T) {
		t.Parallel()

		var params *fedi.QueryParams

		values := params.ToValues()
		assert.NotNil(t, values)
		assert.Empty(t, values)
	})

	t.Run("filter on zero-value struct", func(t *testing.T) {
		t.Parallel()

		params := (&fedi.QueryParams{}).WithFilter("local", "true")
		assert.Equal(t, "true", params.ToValues().Get("local"))
	})
}
