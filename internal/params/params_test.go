package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimit_Parse(t *testing.T) {
	l := Limit{Default: 12, Max: 20}

	tests := []struct {
		query string
		want  int
	}{
		{query: "", want: 12},
		{query: "limit=", want: 12},
		{query: "limit=5", want: 5},
		{query: "limit=%2015%20", want: 15},
		{query: "limit=20", want: 20},
		{query: "limit=21", want: 20},
		{query: "limit=500", want: 20},
		{query: "limit=0", want: 12},
		{query: "limit=-3", want: 12},
		{query: "limit=abc", want: 12},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			q, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, l.Parse(q))
		})
	}
}
