package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Ann", want: "Ann"},
		{name: "Ann Lee", want: "Ann%20Lee"},
		{name: "Tom & Jerry+Co", want: "Tom%20%26%20Jerry%2BCo"},
		{name: "a=b?c#d/é", want: "a%3Db%3Fc%23d%2F%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvatarURL(tt.name)
			assert.Contains(t, got, "?name="+tt.want+"&background=")

			u, err := url.Parse(got)
			require.NoError(t, err)
			query := u.Query()
			assert.Equal(t, tt.name, query.Get("name"))
			assert.Equal(t, "FF6B6B", query.Get("background"))
			assert.Len(t, query, 4)
		})
	}
}
