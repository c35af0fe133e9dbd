package util

import (
	"testing"

	"github.com/gin-gonic/gin"
)

func ctxWithID(id string) *gin.Context {
	c := &gin.Context{}
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c
}

func TestParseID(t *testing.T) {
	cases := []struct {
		raw  string
		want uint
	}{
		{"42", 42},
		{"0", 0},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
	}

	for _, tc := range cases {
		if got := ParseID(ctxWithID(tc.raw)); got != tc.want {
			t.Errorf("ParseID(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
