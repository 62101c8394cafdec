package scraper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasNextLink(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantNext bool
		wantErr  error
	}{
		{
			name:     "next present",
			header:   `<https://www.worldcubeassociation.org/api/v0/competition_index?page=2>; rel="next", <https://www.worldcubeassociation.org/api/v0/competition_index?page=4>; rel="last"`,
			wantNext: true,
		},
		{
			name:     "last page",
			header:   `<https://x.org/api?page=1>; rel="first", <https://x.org/api?page=3>; rel="prev"`,
			wantNext: false,
		},
		{
			name:     "commas inside the uri",
			header:   `<https://x.org/api?sort=start_date,end_date,name&page=1>; rel="prev", <https://x.org/api?sort=start_date,end_date,name&page=3>; rel="next"`,
			wantNext: true,
		},
		{
			name:     "unquoted relation",
			header:   `<https://x.org/api?page=2>; rel=next`,
			wantNext: true,
		},
		{
			name:     "multiple relation types",
			header:   `<https://x.org/api?page=2>; rel="last next"`,
			wantNext: true,
		},
		{
			name:     "next in uri only",
			header:   `<https://x.org/next?page=2>; rel="prev"`,
			wantNext: false,
		},
		{
			name:    "empty",
			header:  "",
			wantErr: ErrMissingPaginationSignal,
		},
		{
			name:    "no descriptors",
			header:  `rel="next"`,
			wantErr: ErrMissingPaginationSignal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasNextLink(tt.header)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error %v is not %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNext, got)
		})
	}
}
